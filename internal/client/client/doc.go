// Package client talks to the PageKeeper remote gateway and bootstraps the
// local database.
//
// Client is the transport-agnostic contract. GRPCClient implements it over
// gRPC: it attaches the access token to every call, refreshes an expired
// token once per call, and maps status codes to sentinel errors
// (ErrUnavailable, ErrUnauthorized, common.ErrorNotFound, common.ErrorForbidden,
// common.ErrorAlreadyExists, common.ErrorInvalidInput).
//
// InitDatabase opens the SQLite file backing the Local Store and applies the
// embedded goose migrations.
package client

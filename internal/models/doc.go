// Package models defines the profile and page records shared by the client
// Local Store, the gRPC wire messages and the server repositories.
//
// JSON field names are part of the persisted Local Store layout and must not change.
package models

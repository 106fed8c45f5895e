// Package common contains shared constants and sentinel errors used across
// PageKeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ServiceName is the fully qualified gRPC service name of the remote gateway.
const ServiceName = "pagekeeper.PageKeeper"

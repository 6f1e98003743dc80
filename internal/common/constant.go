// Package common contains constants, sentinel errors and small helpers shared
// by the fisikaap client and the reference backend.
package common

const (
	// AuthorizationHeader carries "Bearer <token>" on authenticated requests.
	AuthorizationHeader = "Authorization"

	// BearerScheme prefixes the credential in AuthorizationHeader.
	BearerScheme = "Bearer"

	// RequestIDHeader correlates one client call with backend log lines.
	RequestIDHeader = "X-Request-ID"
)

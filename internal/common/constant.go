// Package common contains constants and small helpers shared by the
// authkeeper client packages.
package common

// Header names used on outbound requests.
const (
	AuthorizationHeaderName = "Authorization"
	ContentTypeHeaderName   = "Content-Type"
	AcceptHeaderName        = "Accept"
	RequestIDHeaderName     = "X-Request-ID"
)

// Content types understood by the remote service. Registration is sent as
// JSON while login is sent as an HTML form, mirroring what the service's
// OAuth2 password flow expects.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// BearerScheme is the authorization scheme prefix for access tokens.
const BearerScheme = "Bearer"

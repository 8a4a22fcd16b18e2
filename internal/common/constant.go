package common

const (
	// AuthorizationHeaderName carries the bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// DefaultListLimit and DefaultListOffset apply when /predictions is called
	// without query parameters.
	DefaultListLimit  = 10
	DefaultListOffset = 0
)

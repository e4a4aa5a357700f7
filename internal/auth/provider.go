package auth

// Provider checks the bearer token presented by the device.
type Provider interface {
	ValidateToken(token string) error
}

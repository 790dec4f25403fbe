package config

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// MinSecretLen is the minimum accepted secret length, enforced
	// locally before any network call.
	MinSecretLen int `env:"AUTH_MIN_SECRET_LEN" envDefault:"8"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.MinSecretLen < 1 {
		a.MinSecretLen = 1
	}
}

package config

import "time"

// APIConfig contains backend API client configuration.
type APIConfig struct {
	// BaseURL is the root of the food-review backend API.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api/v1"`

	// Timeout is the per-request timeout for API calls.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
}

package tribridrag

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the per-request timeout used when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the backend API client.
//
// Example:
//
//	client, _ := tribridrag.NewClient(tribridrag.Config{
//	    BaseURL: "http://localhost:9090",
//	    APIKey:  os.Getenv("TRIBRIDRAG_API_KEY"),
//	})
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:9090" (required)
	BaseURL string

	// APIKey is sent as a bearer token (optional; backends in demo mode
	// accept unauthenticated requests)
	APIKey string

	// HTTPClient is an existing http.Client (optional, takes precedence
	// over Timeout)
	HTTPClient *http.Client

	// Timeout is the per-request timeout (optional)
	// Default: 30 seconds
	Timeout time.Duration
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: BaseURL is not a valid URL: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: BaseURL must be http or https", ErrInvalidConfig)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: Timeout must not be negative", ErrInvalidConfig)
	}

	return nil
}

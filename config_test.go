package tribridrag

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{BaseURL: "http://localhost:9090"}, false},
		{"valid https with key", Config{BaseURL: "https://rag.example.com", APIKey: "k"}, false},
		{"missing base url", Config{}, true},
		{"bad scheme", Config{BaseURL: "ftp://example.com"}, true},
		{"negative timeout", Config{BaseURL: "http://localhost", Timeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("got %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://localhost:9090/"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if got := client.baseURL.String(); got != "http://localhost:9090" {
		t.Errorf("unexpected base url: %q", got)
	}
}

package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionConfig configures the token-backed auth provider. The token is the
// bearer token establishing the current session; an empty token means the
// application starts signed out.
type SessionConfig struct {
	Token           string        `koanf:"token"`
	RefreshInterval time.Duration `koanf:"refreshinterval"`
}

// String returns a string representation with the token masked.
func (c *SessionConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Session ---\n")
	b.WriteString(fmt.Sprintf("  token: %s\n", maskToken(c.Token)))
	b.WriteString(fmt.Sprintf("  refreshinterval: %s\n", c.RefreshInterval))
	return b.String()
}

func (c *SessionConfig) Validate() error {
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("session refresh interval must be greater than zero")
	}
	return nil
}

func maskToken(token string) string {
	if token == "" {
		return "<not configured>"
	}
	return "****"
}

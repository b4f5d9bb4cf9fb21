package core

import (
	"time"

	"github.com/rs/zerolog"
)

// Config wires the hub client together. BaseURL is the only required
// field when the default transport is used; every port can be swapped
// for a custom implementation.
type Config struct {
	BaseURL string

	// Optional config
	HTTP          Transport
	Credentials   CredentialStore
	Cache         QueryCache
	SessionConfig *SessionConfig
	CacheConfig   *CacheConfig
	Timeout       time.Duration
	Logger        *zerolog.Logger
}

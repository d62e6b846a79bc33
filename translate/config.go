package translate

import (
	"log/slog"
	"time"
)

// Config configures a LibreTranslate client.
type Config struct {
	// URL is the server base URL, e.g. "http://localhost:5000".
	URL string `yaml:"url"`

	// APIKey is sent with every request when set.
	APIKey string `yaml:"api_key"`

	// Timeout bounds each HTTP request (default: 60s).
	Timeout time.Duration `yaml:"timeout"`

	// CacheDir enables the on-disk translation cache when set.
	CacheDir string `yaml:"cache_dir"`

	// Logger for debug/error messages.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultURL is where a locally run LibreTranslate listens.
const DefaultURL = "http://localhost:5000"

func (c *Config) defaults() {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

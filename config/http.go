package config

import (
	"strings"
	"time"
)

// HTTPConfig configures the listener, cookies and response compression.
type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the public origin of the portal. An https origin forces
	// Secure cookies even when TLS ends at a proxy that drops X-Forwarded-Proto.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain scopes the session and CSRF cookies. Empty means host-only.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED"  envDefault:"false"`
	CompressionLevel   int  `env:"HTTP_COMPRESSION_LEVEL"    envDefault:"6"`
	CompressionMinSize int  `env:"HTTP_COMPRESSION_MIN_SIZE" envDefault:"1024"`

	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT"        envDefault:"30s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT"       envDefault:"30s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"    envDefault:"15s"`
}

// SecureOrigin reports whether BaseURL is served over https.
func (h HTTPConfig) SecureOrigin() bool {
	return strings.HasPrefix(strings.ToLower(h.BaseURL), "https://")
}

// Sanitize clamps the gzip level to 1..9 and restores zero timeouts to their defaults.
func (h *HTTPConfig) Sanitize() {
	h.CompressionLevel = min(max(h.CompressionLevel, 1), 9)
	h.CompressionMinSize = max(h.CompressionMinSize, 0)
	h.BaseURL = strings.TrimRight(strings.TrimSpace(h.BaseURL), "/")
	if h.ReadHeaderTimeout <= 0 {
		h.ReadHeaderTimeout = 10 * time.Second
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 15 * time.Second
	}
}

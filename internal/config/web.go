package config

import (
	"strings"
	"time"
)

// WebConfig contains the configuration for the web server.
type WebConfig struct {
	// RequestLogging enables logging of all HTTP requests.
	RequestLogging bool `yaml:"request_logging"`
	// ExposeHostInfo sets whether the host information should be exposed in a response header.
	ExposeHostInfo bool `yaml:"expose_host_info"`
	// ExternalUrl is the URL where a client can access the portal.
	// Session cookies are marked secure if it starts with https.
	ExternalUrl string `yaml:"external_url"`
	// ListeningAddress is the address and port for the web server.
	ListeningAddress string `yaml:"listening_address"`
	// SessionIdentifier is the name of the session cookie.
	SessionIdentifier string `yaml:"session_identifier"`
	// SessionLifetime is the absolute lifetime of a controller session.
	SessionLifetime time.Duration `yaml:"session_lifetime"`
	// SiteTitle is the title that is shown in the web frontend.
	SiteTitle string `yaml:"site_title"`
	// SiteCompanyName is the company name that is shown at the bottom of the web frontend.
	SiteCompanyName string `yaml:"site_company_name"`
	// LoginRateLimit is the number of login attempts per second allowed for a single client IP.
	LoginRateLimit float64 `yaml:"login_rate_limit"`
	// LoginRateBurst is the number of login attempts a client may use at once.
	LoginRateBurst int `yaml:"login_rate_burst"`
	// TrustedProxies are proxy addresses whose X-Forwarded-For header is honored. Use PRIVATE for all private IPs.
	TrustedProxies []string `yaml:"trusted_proxies"`
	// CertFile is the path to the TLS certificate file.
	CertFile string `yaml:"cert_file"`
	// KeyFile is the path to the TLS certificate key file.
	KeyFile string `yaml:"key_file"`
}

func (c *WebConfig) Sanitize() {
	c.ExternalUrl = strings.TrimRight(c.ExternalUrl, "/")
}

// SecureCookies reports whether the session cookie should only be sent via https.
func (c *WebConfig) SecureCookies() bool {
	return strings.HasPrefix(c.ExternalUrl, "https")
}

package config

import "time"

// S3Config describes the bucket that holds document templates. The fetcher
// falls back to plain HTTP downloads when Bucket is empty.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// Enabled reports whether templates should be read from S3.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Config holds runtime settings for the PlanA CLI.
//
// Fields:
//   - APIBaseURL: root of the PlanA REST API.
//   - FrontURL: public URL of the front-end, used to build the CAS service URL.
//   - DatabasePath: sqlite file holding persisted tokens.
//   - RequestTimeout: per-request timeout for outbound calls.
//   - RateLimit: outbound requests per second, 0 disables limiting.
//   - LogBackend: "slog" or "zap".
//   - TemplatesDir: where downloaded document templates are written.
type Config struct {
	APIBaseURL     string
	FrontURL       string
	DatabasePath   string
	RequestTimeout time.Duration
	RateLimit      float64
	LogBackend     string
	Debug          bool
	TemplatesDir   string
	S3             S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.FrontURL = "http://localhost:3000"
	c.DatabasePath = "plana.db"
	c.RequestTimeout = 10 * time.Second
	c.RateLimit = 10
	c.LogBackend = "slog"
	c.TemplatesDir = "templates"
}

// CASServiceURL is the service parameter sent with a CAS ticket.
func (c *Config) CASServiceURL() string {
	return c.FrontURL + "/cas-register"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

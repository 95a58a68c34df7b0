package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/plana/internal/flagx"
	"github.com/dmitrijs2005/plana/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from zero values so the file only overrides what it names.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	FrontURL       *string         `json:"front_url"`
	DatabasePath   *string         `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RateLimit      *float64        `json:"rate_limit"`
	LogBackend     *string         `json:"log_backend"`
	Debug          *bool           `json:"debug"`
	TemplatesDir   *string         `json:"templates_dir"`
	S3Bucket       string          `json:"s3_bucket"`
	S3Region       string          `json:"s3_region"`
	S3BaseEndpoint string          `json:"s3_base_endpoint"`
	S3AccessKey    string          `json:"s3_access_key"`
	S3SecretKey    string          `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// comes from -c or -config. Nothing happens when neither flag is given.
// Read and unmarshal errors panic; main recovers and exits.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.FrontURL, jc.FrontURL)
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.RateLimit, jc.RateLimit)
	setIf(&cfg.LogBackend, jc.LogBackend)
	setIf(&cfg.Debug, jc.Debug)
	setIf(&cfg.TemplatesDir, jc.TemplatesDir)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}

	cfg.S3 = S3Config{
		Bucket:       jc.S3Bucket,
		Region:       jc.S3Region,
		BaseEndpoint: jc.S3BaseEndpoint,
		AccessKey:    jc.S3AccessKey,
		SecretKey:    jc.S3SecretKey,
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

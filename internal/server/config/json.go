package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// jsonConfig mirrors Config for JSON unmarshalling. Durations are accepted
// either as strings ("15m") or as integer nanoseconds.
type jsonConfig struct {
	EndpointAddr                 string   `json:"endpoint_addr"`
	DatabaseDSN                  string   `json:"database_dsn"`
	SecretKey                    string   `json:"secret_key"`
	AccessTokenValidityDuration  duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration duration `json:"refresh_token_validity_duration"`
	S3AccessKey                  string   `json:"s3_access_key"`
	S3SecretKey                  string   `json:"s3_secret_key"`
	S3Bucket                     string   `json:"s3_bucket"`
	S3Region                     string   `json:"s3_region"`
	S3BaseEndpoint               string   `json:"s3_base_endpoint"`
	GoogleClientID               string   `json:"google_client_id"`
	GoogleClientSecret           string   `json:"google_client_secret"`
	OAuthRedirectURL             string   `json:"oauth_redirect_url"`
	AllowedEmailDomain           string   `json:"allowed_email_domain"`
	MaxFileSize                  int64    `json:"max_file_size"`
	SignedURLValidityDuration    duration `json:"signed_url_validity_duration"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
	return nil
}

// configFilePath scans args for -config/-c (separate value or "=" form).
// JSON must be located before the full flag parse, because the file values
// have to be in place as the flag defaults.
func configFilePath(args []string) string {
	names := map[string]bool{"-config": true, "--config": true, "-c": true, "--c": true}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if eq := strings.IndexByte(arg, '='); eq > 0 && names[arg[:eq]] {
			return arg[eq+1:]
		}
		if names[arg] && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// parseJSON overlays values from an optional JSON file onto cfg. Zero values
// in the file leave the corresponding cfg field untouched.
func parseJSON(cfg *Config, args []string) error {
	path := configFilePath(args)
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(raw, &jc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenValidityDuration.Duration != 0 {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.RefreshTokenValidityDuration.Duration != 0 {
		cfg.RefreshTokenValidityDuration = jc.RefreshTokenValidityDuration.Duration
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.GoogleClientID != "" {
		cfg.GoogleClientID = jc.GoogleClientID
	}
	if jc.GoogleClientSecret != "" {
		cfg.GoogleClientSecret = jc.GoogleClientSecret
	}
	if jc.OAuthRedirectURL != "" {
		cfg.OAuthRedirectURL = jc.OAuthRedirectURL
	}
	if jc.AllowedEmailDomain != "" {
		cfg.AllowedEmailDomain = jc.AllowedEmailDomain
	}
	if jc.MaxFileSize != 0 {
		cfg.MaxFileSize = jc.MaxFileSize
	}
	if jc.SignedURLValidityDuration.Duration != 0 {
		cfg.SignedURLValidityDuration = jc.SignedURLValidityDuration.Duration
	}
	return nil
}

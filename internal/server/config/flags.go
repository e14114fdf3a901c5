package config

import (
	"flag"
	"io"
	"time"
)

// parseFlags populates Config fields from command-line flags. Values already
// present in cfg (defaults or JSON overlay) act as the flag defaults, so the
// precedence is defaults < JSON < flags.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Consumed by parseJSON; registered here so Parse accepts it.
	fs.String("config", "", "path to JSON config file")
	fs.String("c", "", "path to JSON config file (short)")

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")

	accessMin := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (minutes)")
	refreshMin := fs.Int("r", int(cfg.RefreshTokenValidityDuration.Minutes()), "refresh token validity (minutes)")

	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&cfg.GoogleClientID, "google-client-id", cfg.GoogleClientID, "Google OAuth client id")
	fs.StringVar(&cfg.GoogleClientSecret, "google-client-secret", cfg.GoogleClientSecret, "Google OAuth client secret")
	fs.StringVar(&cfg.OAuthRedirectURL, "oauth-redirect-url", cfg.OAuthRedirectURL, "OAuth callback URL")
	fs.StringVar(&cfg.AllowedEmailDomain, "email-domain", cfg.AllowedEmailDomain, "accepted sign-in email domain")

	fs.Int64Var(&cfg.MaxFileSize, "max-file-size", cfg.MaxFileSize, "per-file upload limit (bytes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.AccessTokenValidityDuration = time.Duration(*accessMin) * time.Minute
	cfg.RefreshTokenValidityDuration = time.Duration(*refreshMin) * time.Minute
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by LoadSettings when present.
const DefaultEnvFile = ".env"

// Settings holds connection and integration settings.
type Settings struct {
	APIURL   string
	APIToken string

	// HCloudToken enables importing Hetzner Cloud servers as nodes.
	HCloudToken string

	S3 S3Settings

	// PushgatewayURL, when set, receives the run's metrics.
	PushgatewayURL string
}

// S3Settings configures kubeconfig export to s3:// targets.
type S3Settings struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Configured reports whether enough S3 settings are present to create a client.
func (s S3Settings) Configured() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != ""
}

// LoadSettings reads envFile (if it exists) into the environment without
// overriding variables that are already set, then builds Settings from the
// list below. A variable exported as empty counts as set and hides the
// envFile value.
//   - COLONY_API_URL (required)
//   - COLONY_API_TOKEN
//   - HCLOUD_TOKEN
//   - COLONY_S3_ENDPOINT, COLONY_S3_REGION (default: fsn1),
//     COLONY_S3_ACCESS_KEY, COLONY_S3_SECRET_KEY
//   - COLONY_PUSHGATEWAY_URL
func LoadSettings(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	s := &Settings{
		APIURL:      os.Getenv("COLONY_API_URL"),
		APIToken:    os.Getenv("COLONY_API_TOKEN"),
		HCloudToken: os.Getenv("HCLOUD_TOKEN"),
		S3: S3Settings{
			Endpoint:  os.Getenv("COLONY_S3_ENDPOINT"),
			Region:    envOrDefault("COLONY_S3_REGION", "fsn1"),
			AccessKey: os.Getenv("COLONY_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("COLONY_S3_SECRET_KEY"),
		},
		PushgatewayURL: os.Getenv("COLONY_PUSHGATEWAY_URL"),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the API URL is present and well-formed.
func (s *Settings) Validate() error {
	if s.APIURL == "" {
		return fmt.Errorf("COLONY_API_URL environment variable is required")
	}
	u, err := url.Parse(s.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("COLONY_API_URL %q is not a valid URL", s.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("COLONY_API_URL must use http or https, got %q", u.Scheme)
	}
	return nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

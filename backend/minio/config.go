// Package minio provides a MinIO/S3-compatible storage backend. Directories
// are virtual: a created directory is represented by a zero-length marker
// object whose key carries a trailing slash, and any key prefix containing
// objects is also treated as a directory.
package minio

import (
	"fmt"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"

	"github.com/river0g/opfs-kit/errors"
)

// Config holds MinIO backend configuration.
type Config struct {
	// Endpoint is the MinIO server URL (e.g., "localhost:9000")
	Endpoint string `koanf:"endpoint"`

	// Bucket is the S3 bucket name
	Bucket string `koanf:"bucket"`

	// AccessKey is the access key ID for authentication
	AccessKey string `koanf:"access_key"`

	// SecretKey is the secret access key for authentication
	SecretKey string `koanf:"secret_key"`

	// UseSSL enables HTTPS connections
	UseSSL bool `koanf:"use_ssl"`

	// Prefix is an optional prefix for all object keys (for namespacing)
	Prefix string `koanf:"prefix"`

	// Client is an optional pre-configured MinIO client.
	// If provided, Endpoint/AccessKey/SecretKey are ignored.
	Client *minio.Client `koanf:"-"`

	// MultipartThreshold is the buffered-write size beyond which uploads
	// switch to streaming. Set to 0 to use the 5MB default.
	MultipartThreshold int64 `koanf:"multipart_threshold"`
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + AccessKey + SecretKey) must be provided,
// and Bucket is required in all cases.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}

	if c.Client != nil {
		return nil
	}

	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required when client is not provided")
	}

	return nil
}

// LoadConfig reads a backend configuration from a YAML or JSON file.
// The format is chosen by file extension.
func LoadConfig(path string) (Config, error) {
	var parser koanf.Parser
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return Config{}, errors.Newf(errors.CodeInvalidConfig, "unsupported config format %q", ext)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return Config{}, errors.Wrap(err, errors.CodeInvalidConfig, "Error loading backend config")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.CodeInvalidConfig, "Error parsing backend config")
	}

	return cfg, nil
}

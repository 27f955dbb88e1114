package minio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/river0g/opfs-kit/core"
	"github.com/river0g/opfs-kit/errors"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid full config",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "access",
				SecretKey: "secret",
			},
		},
		{
			name:    "missing bucket",
			config:  Config{Endpoint: "localhost:9000", AccessKey: "access", SecretKey: "secret"},
			wantErr: "bucket is required",
		},
		{
			name:    "missing endpoint",
			config:  Config{Bucket: "test-bucket", AccessKey: "access", SecretKey: "secret"},
			wantErr: "endpoint is required",
		},
		{
			name:    "missing access key",
			config:  Config{Endpoint: "localhost:9000", Bucket: "test-bucket", SecretKey: "secret"},
			wantErr: "access key is required",
		},
		{
			name:    "missing secret key",
			config:  Config{Endpoint: "localhost:9000", Bucket: "test-bucket", AccessKey: "access"},
			wantErr: "secret key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("prefix is normalized", func(t *testing.T) {
		b, err := New(Config{
			Endpoint:  "localhost:9000",
			Bucket:    "test-bucket",
			AccessKey: "access",
			SecretKey: "secret",
			Prefix:    "/tenant/a/",
		})
		require.NoError(t, err)
		assert.Equal(t, "tenant/a", b.prefix)
	})

	t.Run("default multipart threshold", func(t *testing.T) {
		b, err := New(Config{
			Endpoint:  "localhost:9000",
			Bucket:    "test-bucket",
			AccessKey: "access",
			SecretKey: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5*1024*1024), b.multipartThreshold)
	})
}

func TestBackendType(t *testing.T) {
	b, err := New(Config{
		Endpoint:  "localhost:9000",
		Bucket:    "test-bucket",
		AccessKey: "access",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, core.BackendTypeRemote, b.Type())
	assert.True(t, b.Supported())

	var nilBackend *Backend
	assert.False(t, nilBackend.Supported())
}

func TestLoadConfig(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "backend.yaml")
		body := "endpoint: localhost:9000\nbucket: test-bucket\naccess_key: access\nsecret_key: secret\nuse_ssl: true\nprefix: tenant/a\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "localhost:9000", cfg.Endpoint)
		assert.Equal(t, "test-bucket", cfg.Bucket)
		assert.Equal(t, "access", cfg.AccessKey)
		assert.Equal(t, "secret", cfg.SecretKey)
		assert.True(t, cfg.UseSSL)
		assert.Equal(t, "tenant/a", cfg.Prefix)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "backend.json")
		body := `{"endpoint":"localhost:9000","bucket":"test-bucket","access_key":"access","secret_key":"secret","multipart_threshold":1024}`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "test-bucket", cfg.Bucket)
		assert.Equal(t, int64(1024), cfg.MultipartThreshold)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadConfig("backend.toml")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeInvalidConfig))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeInvalidConfig))
	})
}

func TestMarkerKey(t *testing.T) {
	assert.Equal(t, "a/b/", markerKey("a/b"))
	assert.Equal(t, "solo/", markerKey("solo"))
}

func TestChildPrefix(t *testing.T) {
	root := &dirHandle{key: ""}
	assert.Equal(t, "", root.childPrefix())

	nested := &dirHandle{key: "a/b"}
	assert.Equal(t, "a/b/", nested.childPrefix())
}

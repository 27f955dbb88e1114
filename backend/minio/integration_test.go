package minio

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	opfskit "github.com/river0g/opfs-kit"
	"github.com/river0g/opfs-kit/core"
	"github.com/river0g/opfs-kit/fstest"
)

// setupMinIOContainer starts a MinIO container and returns its endpoint and
// a cleanup function.
func setupMinIOContainer(t *testing.T) (string, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}

	minioC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start MinIO container")

	endpoint, err := minioC.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	cleanup := func() {
		_ = minioC.Terminate(ctx)
	}

	return endpoint, cleanup
}

var prefixCounter atomic.Int64

// setupBackend creates a Backend over a shared test bucket, isolated from
// other tests by a unique key prefix.
func setupBackend(t *testing.T, endpoint string) *Backend {
	t.Helper()

	ctx := context.Background()

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err, "failed to create MinIO client")

	const bucketName = "test-bucket"
	err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, existsErr := client.BucketExists(ctx, bucketName)
		require.NoError(t, existsErr)
		require.True(t, exists, "bucket creation failed: %v", err)
	}

	backend, err := New(Config{
		Client: client,
		Bucket: bucketName,
		Prefix: fmt.Sprintf("run-%d", prefixCounter.Add(1)),
	})
	require.NoError(t, err)

	return backend
}

func TestMinioConformance(t *testing.T) {
	endpoint, cleanup := setupMinIOContainer(t)
	defer cleanup()

	fstest.TestBackendWithConfig(t, func() core.Backend {
		return setupBackend(t, endpoint)
	}, fstest.S3Config())
}

func TestStreamingUpload(t *testing.T) {
	endpoint, cleanup := setupMinIOContainer(t)
	defer cleanup()

	backend := setupBackend(t, endpoint)
	// Force the buffered-to-streaming transition with a tiny threshold.
	backend.multipartThreshold = 1024

	f := opfskit.New(backend)
	ctx := context.Background()

	body := strings.Repeat("streaming payload ", 4096)
	require.NoError(t, f.WriteFile("/large.txt", body).Wait(ctx))

	data, err := f.ReadFile("/large.txt").Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, body, data.Text())
}

func TestCreatedDirectoryIsListed(t *testing.T) {
	endpoint, cleanup := setupMinIOContainer(t)
	defer cleanup()

	f := opfskit.New(setupBackend(t, endpoint))
	ctx := context.Background()

	// An explicitly created, still-empty directory must show up in its
	// parent listing via its marker object.
	require.NoError(t, f.Mkdir("/empty-dir").Wait(ctx))

	names, err := f.ReadDir("/").Await(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "empty-dir")

	listing, err := f.ReadDir("/empty-dir").Await(ctx)
	require.NoError(t, err)
	assert.Empty(t, listing)
}

func TestPrefixIsolation(t *testing.T) {
	endpoint, cleanup := setupMinIOContainer(t)
	defer cleanup()

	first := opfskit.New(setupBackend(t, endpoint))
	second := opfskit.New(setupBackend(t, endpoint))
	ctx := context.Background()

	require.NoError(t, first.WriteFile("/only-here.txt", "tenant one").Wait(ctx))

	exists, err := second.Exists("/only-here.txt").Await(ctx)
	require.NoError(t, err)
	assert.False(t, exists, "objects must not leak across prefixes")
}

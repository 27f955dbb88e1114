package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/river0g/opfs-kit/core"
	"github.com/river0g/opfs-kit/internal/pathutil"
)

// Backend implements core.Backend over a MinIO/S3-compatible bucket.
//
// Object keys carry no native hierarchy, so the handle tree is synthesized
// from key prefixes: a directory handle for prefix "a/b" covers every object
// whose key starts with "a/b/". Explicitly created directories additionally
// get a zero-length marker object at "a/b/" so they remain visible while
// empty.
type Backend struct {
	client             *minio.Client
	bucket             string
	prefix             string
	multipartThreshold int64
}

// New creates a MinIO-backed storage backend.
// Returns an error if the configuration is invalid or the client cannot be
// constructed. No network call is made; connectivity failures surface on
// first use.
func New(cfg Config) (*Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	threshold := cfg.MultipartThreshold
	if threshold <= 0 {
		threshold = 5 * 1024 * 1024
	}

	return &Backend{
		client:             client,
		bucket:             cfg.Bucket,
		prefix:             pathutil.Normalize(cfg.Prefix),
		multipartThreshold: threshold,
	}, nil
}

// Supported reports whether the backend has a usable client and bucket.
func (b *Backend) Supported() bool {
	return b != nil && b.client != nil && b.bucket != ""
}

// Root returns the directory handle covering the configured key prefix.
func (b *Backend) Root() (core.DirectoryHandle, error) {
	if !b.Supported() {
		return nil, core.ErrUnsupported
	}
	return &dirHandle{backend: b, key: b.prefix, name: ""}, nil
}

// Type returns core.BackendTypeRemote.
func (b *Backend) Type() core.BackendType {
	return core.BackendTypeRemote
}

// markerKey returns the zero-length marker object key for a directory key.
func markerKey(key string) string {
	return key + "/"
}

// dirHandle addresses the objects sharing one key prefix.
type dirHandle struct {
	backend *Backend
	key     string // prefix without trailing slash; "" for an unprefixed root
	name    string
}

func (d *dirHandle) Name() string { return d.name }

// childPrefix returns the listing prefix for this directory's immediate
// children. An empty key (unprefixed root) lists the whole bucket.
func (d *dirHandle) childPrefix() string {
	if d.key == "" {
		return ""
	}
	return d.key + "/"
}

// statKey reports whether an object exists at exactly the given key.
func (d *dirHandle) statKey(ctx context.Context, key string) (bool, error) {
	_, err := d.backend.client.StatObject(ctx, d.backend.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if terr := translate(err); !errors.Is(terr, fs.ErrNotExist) {
		return false, terr
	}
	return false, nil
}

// hasChildren reports whether any object exists under the given directory
// key, marker objects included.
func (d *dirHandle) hasChildren(ctx context.Context, key string) (bool, error) {
	objects := d.backend.client.ListObjects(ctx, d.backend.bucket, minio.ListObjectsOptions{
		Prefix:  markerKey(key),
		MaxKeys: 1,
	})
	for obj := range objects {
		if obj.Err != nil {
			return false, translate(obj.Err)
		}
		return true, nil
	}
	return false, nil
}

func (d *dirHandle) Directory(name string, create bool) (core.DirectoryHandle, error) {
	ctx := context.Background()
	key := pathutil.Join(d.key, name)

	// An object at the bare key means a file occupies the name.
	isFile, err := d.statKey(ctx, key)
	if err != nil {
		return nil, pathError("directory", name, err)
	}
	if isFile {
		return nil, pathError("directory", name, core.ErrNotDirectory)
	}

	populated, err := d.hasChildren(ctx, key)
	if err != nil {
		return nil, pathError("directory", name, err)
	}
	if !populated {
		if !create {
			return nil, pathError("directory", name, fs.ErrNotExist)
		}
		_, err := d.backend.client.PutObject(ctx, d.backend.bucket, markerKey(key),
			bytes.NewReader(nil), 0, minio.PutObjectOptions{})
		if err != nil {
			return nil, pathError("directory", name, translate(err))
		}
	}

	return &dirHandle{backend: d.backend, key: key, name: name}, nil
}

func (d *dirHandle) File(name string, create bool) (core.FileHandle, error) {
	ctx := context.Background()
	key := pathutil.Join(d.key, name)

	exists, err := d.statKey(ctx, key)
	if err != nil {
		return nil, pathError("file", name, err)
	}
	if exists {
		return &fileHandle{backend: d.backend, key: key, name: name}, nil
	}

	// The name may be occupied by a virtual directory.
	populated, err := d.hasChildren(ctx, key)
	if err != nil {
		return nil, pathError("file", name, err)
	}
	if populated {
		return nil, pathError("file", name, core.ErrIsDirectory)
	}

	if !create {
		return nil, pathError("file", name, fs.ErrNotExist)
	}

	// Materialize the entry as a zero-length object so it is immediately
	// visible to listings and existence checks.
	_, err = d.backend.client.PutObject(ctx, d.backend.bucket, key,
		bytes.NewReader(nil), 0, minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return nil, pathError("file", name, translate(err))
	}

	return &fileHandle{backend: d.backend, key: key, name: name}, nil
}

func (d *dirHandle) Remove(name string) error {
	ctx := context.Background()
	key := pathutil.Join(d.key, name)

	isFile, err := d.statKey(ctx, key)
	if err != nil {
		return pathError("remove", name, err)
	}
	if isFile {
		if err := d.backend.client.RemoveObject(ctx, d.backend.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return pathError("remove", name, translate(err))
		}
		return nil
	}

	// Directory case: only an empty directory (its marker alone) may be
	// removed through a single-entry Remove.
	objects := d.backend.client.ListObjects(ctx, d.backend.bucket, minio.ListObjectsOptions{
		Prefix:  markerKey(key),
		MaxKeys: 2,
	})
	found := false
	for obj := range objects {
		if obj.Err != nil {
			return pathError("remove", name, translate(obj.Err))
		}
		if obj.Key != markerKey(key) {
			return pathError("remove", name, fmt.Errorf("directory not empty"))
		}
		found = true
	}
	if !found {
		// S3 deletes are idempotent; removing a missing entry succeeds.
		return nil
	}

	if err := d.backend.client.RemoveObject(ctx, d.backend.bucket, markerKey(key), minio.RemoveObjectOptions{}); err != nil {
		return pathError("remove", name, translate(err))
	}
	return nil
}

func (d *dirHandle) Children() ([]string, error) {
	ctx := context.Background()
	prefix := d.childPrefix()

	objects := d.backend.client.ListObjects(ctx, d.backend.bucket, minio.ListObjectsOptions{
		Prefix: prefix,
	})

	names := make([]string, 0)
	for obj := range objects {
		if obj.Err != nil {
			return nil, pathError("children", d.name, translate(obj.Err))
		}
		rel := strings.TrimPrefix(obj.Key, prefix)
		if rel == "" {
			// This directory's own marker object.
			continue
		}
		// Non-recursive listings report sub-prefixes with a trailing slash.
		rel = strings.TrimSuffix(rel, "/")
		names = append(names, rel)
	}
	return names, nil
}

var (
	_ core.Backend         = (*Backend)(nil)
	_ core.DirectoryHandle = (*dirHandle)(nil)
)

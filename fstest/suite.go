// Package fstest provides a conformance test suite for validating storage
// backend implementations against the core.Backend contract.
//
// The suite exercises backends through the path-addressed operation layer,
// so it validates both the handle tree semantics and their interaction with
// path resolution. Backends with behavioral differences (for example
// idempotent deletes on S3-compatible stores) configure the suite instead
// of skipping it wholesale.
//
// Example usage:
//
//	func TestMyBackend(t *testing.T) {
//	    fstest.TestBackend(t, func() core.Backend {
//	        return mybackend.New()
//	    })
//	}
package fstest

import (
	"testing"

	"github.com/river0g/opfs-kit/core"
)

// Config adapts the suite to backend behavior characteristics.
type Config struct {
	// IdempotentDelete indicates delete operations succeed on missing
	// entries. When true, Unlink on a missing path returns nil instead of
	// a not-found error.
	IdempotentDelete bool

	// SkipTests lists test groups to skip by name (e.g., "Concurrency").
	SkipTests []string
}

// POSIXConfig returns configuration for POSIX-like backends (local, memory).
func POSIXConfig() Config {
	return Config{}
}

// S3Config returns configuration for S3-like backends (MinIO, S3).
func S3Config() Config {
	return Config{
		IdempotentDelete: true,
	}
}

// TestBackend runs all conformance tests against a backend. The newBackend
// function must return a fresh, empty backend for each call; tests create
// and modify entries, so each invocation should start clean.
// Uses POSIXConfig() by default.
func TestBackend(t *testing.T, newBackend func() core.Backend) {
	TestBackendWithConfig(t, newBackend, POSIXConfig())
}

// TestBackendWithConfig runs conformance tests with behavior configuration.
func TestBackendWithConfig(t *testing.T, newBackend func() core.Backend, config Config) {
	shouldSkip := func(testName string) bool {
		for _, skip := range config.SkipTests {
			if skip == testName {
				return true
			}
		}
		return false
	}

	groups := []struct {
		name string
		run  func(*testing.T, core.Backend, Config)
	}{
		{"Read", testRead},
		{"Write", testWrite},
		{"Exists", testExists},
		{"Unlink", testUnlink},
		{"Mkdir", testMkdir},
		{"ReadDir", testReadDir},
		{"Dispatch", testDispatch},
		{"Concurrency", testConcurrency},
	}

	for _, group := range groups {
		t.Run(group.name, func(t *testing.T) {
			if shouldSkip(group.name) {
				t.Skip("Skipped by backend configuration")
				return
			}
			group.run(t, newBackend(), config)
		})
	}
}

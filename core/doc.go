// Package core defines the storage backend capability consumed by the
// path-addressed layer in the opfskit root package.
//
// A backend in this model has no concept of absolute paths. It exposes a
// single root directory handle; every other node is reached by asking a
// directory handle for a named child, one segment at a time. Directory
// handles yield child directory and file handles (optionally creating
// them), remove children by name, and enumerate child names. File handles
// read their whole content and open scoped writable streams.
//
// The interfaces here are the contract every backend provider implements:
//
//   - backend/billy: go-billy backed trees (in-memory and local disk)
//   - backend/minio: MinIO/S3 object storage with virtual directories
//
// Providers are validated against the contract by the fstest package.
package core

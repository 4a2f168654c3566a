// Package store provides persistence for materials and their encrypted
// bundles.
//
// Every backend implements domain.MaterialStore and stores bundles verbatim.
// None of them ever receives plaintext or key material. All methods are safe
// for concurrent use.
//
// The package includes:
//   - MaterialFileStore: a single JSON document on disk, replaced atomically
//     on every write. This is the default backend.
//   - MaterialSQLStore: a SQLite database through gorm, using the pure-Go
//     glebarez driver so no cgo is required.
//   - MaterialObjectStore: one JSON object per material in an S3-compatible
//     bucket through minio-go.
//
// Records are returned in no particular order; callers sort.
package store

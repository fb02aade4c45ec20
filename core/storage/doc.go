// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so that the
// snapshot archive can be tested against core/storage/mocks. Both AWS S3 and
// self-hosted MinIO endpoints work.
//
//   - BucketExists, MakeBucket: bucket bootstrap (see EnsureBucket).
//   - PutObject: uploads a sheet snapshot.
//   - GetObject: reads one back for a replay.
//   - ListObjects: enumerates archived snapshots by prefix.
//
// Usage:
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

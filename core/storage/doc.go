// Package storage wraps the MinIO client used to publish load orders to S3
// compatible object storage.
//
// The Client interface only exposes the calls the service makes, so tests can
// substitute core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

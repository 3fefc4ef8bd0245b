package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"loadorder-manager/core/reconcile"
	"loadorder-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageSink uploads published orders to object storage as
// <prefix>/<profile>/plugins.txt.
type StorageSink struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageSink creates a sink writing into bucket under prefix.
func NewStorageSink(client storage.Client, bucket, prefix string) *StorageSink {
	return &StorageSink{client: client, bucket: bucket, prefix: prefix}
}

// Name returns the sink name.
func (s *StorageSink) Name() string {
	return "storage"
}

// ObjectName returns the object key of a profile's plugins.txt.
func (s *StorageSink) ObjectName(profile string) string {
	return path.Join(s.prefix, profile, "plugins.txt")
}

// Publish uploads the rendered order.
func (s *StorageSink) Publish(ctx context.Context, profile string, order []reconcile.Entry) error {
	data := RenderPluginsTxt(order)
	_, err := s.client.PutObject(ctx, s.bucket, s.ObjectName(profile), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", s.ObjectName(profile), err)
	}
	return nil
}

// Restore reads the last published order of a profile. It returns no entries
// and no error when nothing was published yet.
func (s *StorageSink) Restore(ctx context.Context, profile string) ([]reconcile.Entry, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, s.ObjectName(profile), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.ObjectName(profile), err)
	}
	defer reader.Close()

	order, err := ParsePluginsTxt(reader)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

// isNotFound reports whether err is an S3 NoSuchKey error. MinIO defers the
// request until the first read, so the error can surface from either call.
func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey"
	}
	return false
}

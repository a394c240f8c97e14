package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"cloud.google.com/go/storage"

	"github.com/finance-tracker/core/internal/application/adapter"
)

const (
	latestObject    = "latest.json"
	historyFolder   = "history"
	historyTimeForm = "20060102T150405.000000000Z"
)

// GCSBlobStore stores blobs as Cloud Storage objects: "<prefix>/<key>/latest.json"
// plus a timestamped copy under "<prefix>/<key>/history/".
type GCSBlobStore struct {
	client *storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewGCSClient creates a Cloud Storage client using Application Default Credentials.
func NewGCSClient(ctx context.Context) (*storage.Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return client, nil
}

// NewGCSBlobStore creates a blob store writing to bucket.
func NewGCSBlobStore(client *storage.Client, bucket, prefix string) *GCSBlobStore {
	return &GCSBlobStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func latestObjectName(prefix, key string) string {
	return path.Join(prefix, key, latestObject)
}

func historyObjectName(prefix, key string, at time.Time) string {
	return path.Join(prefix, key, historyFolder, at.UTC().Format(historyTimeForm)+".json")
}

// Put writes the history copy first, then replaces the latest object.
func (s *GCSBlobStore) Put(ctx context.Context, key string, payload []byte) error {
	bkt := s.client.Bucket(s.bucket)

	if err := s.write(ctx, bkt.Object(historyObjectName(s.prefix, key, s.now())), payload); err != nil {
		return err
	}
	if err := s.write(ctx, bkt.Object(latestObjectName(s.prefix, key)), payload); err != nil {
		return err
	}

	slog.Debug("Stored backup blob in GCS", "bucket", s.bucket, "key", key, "bytes", len(payload))
	return nil
}

func (s *GCSBlobStore) write(ctx context.Context, obj *storage.ObjectHandle, payload []byte) error {
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(payload); err != nil {
		_ = w.Close()
		return fmt.Errorf("write GCS object %s: %w", obj.ObjectName(), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload %s: %w", obj.ObjectName(), err)
	}
	return nil
}

// GetLatest downloads the latest object for key or returns adapter.ErrBlobNotFound.
func (s *GCSBlobStore) GetLatest(ctx context.Context, key string) ([]byte, error) {
	obj := s.client.Bucket(s.bucket).Object(latestObjectName(s.prefix, key))

	r, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, adapter.ErrBlobNotFound
		}
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	return data, nil
}

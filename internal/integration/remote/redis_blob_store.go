// Package remote implements remote blob stores used for encrypted session backups.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/core/config"
	"github.com/finance-tracker/core/internal/application/adapter"
)

// DefaultHistoryLimit bounds the number of snapshots kept per key when no limit is configured.
const DefaultHistoryLimit = 10

// RedisBlobStore keeps the latest blob under "<prefix>:<key>:latest" and a
// bounded, newest-first history list under "<prefix>:<key>:history".
type RedisBlobStore struct {
	client       redis.UniversalClient
	prefix       string
	historyLimit int64
}

// NewRedisClient builds a Redis client from configuration.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return redis.NewClient(opts), nil
}

// NewRedisBlobStore creates a blob store over an existing Redis client.
func NewRedisBlobStore(client redis.UniversalClient, prefix string, historyLimit int) *RedisBlobStore {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &RedisBlobStore{
		client:       client,
		prefix:       prefix,
		historyLimit: int64(historyLimit),
	}
}

func (s *RedisBlobStore) latestKey(key string) string {
	return s.prefix + ":" + key + ":latest"
}

func (s *RedisBlobStore) historyKey(key string) string {
	return s.prefix + ":" + key + ":history"
}

// Put stores payload as the latest blob and pushes it onto the history list.
func (s *RedisBlobStore) Put(ctx context.Context, key string, payload []byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.latestKey(key), payload, 0)
		pipe.LPush(ctx, s.historyKey(key), payload)
		pipe.LTrim(ctx, s.historyKey(key), 0, s.historyLimit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store blob %s: %w", key, err)
	}

	slog.Debug("Stored backup blob in redis", "key", key, "bytes", len(payload))
	return nil
}

// GetLatest returns the latest blob for key or adapter.ErrBlobNotFound.
func (s *RedisBlobStore) GetLatest(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.Get(ctx, s.latestKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, adapter.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return payload, nil
}

// History returns the retained blobs for key, newest first.
func (s *RedisBlobStore) History(ctx context.Context, key string) ([][]byte, error) {
	values, err := s.client.LRange(ctx, s.historyKey(key), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history %s: %w", key, err)
	}

	blobs := make([][]byte, len(values))
	for i, v := range values {
		blobs[i] = []byte(v)
	}
	return blobs, nil
}

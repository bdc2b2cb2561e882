// Package slot provides the durable slot abstraction: one named value in a
// key-value store, holding the serialized document collection. The document
// store is the slot's only reader and only writer.
package slot

import (
	"context"
	"sync"

	"github.com/inkweld/inkweld/backend/go-services/internal/config"
	"github.com/inkweld/inkweld/backend/go-services/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Slot is a single named durable value.
type Slot interface {
	// Read returns the stored value. ok is false when no value exists,
	// which is not an error.
	Read(ctx context.Context) (data []byte, ok bool, err error)
	// Write replaces the stored value wholesale.
	Write(ctx context.Context, data []byte) error
	// Clear removes the stored value.
	Clear(ctx context.Context) error
	// Backend names the implementation for logs and metrics.
	Backend() string
}

// Open selects a slot backend from configuration. An unreachable backend
// falls back to memory with a warning; storage never blocks startup.
func Open(ctx context.Context, cfg config.StorageConfig) Slot {
	key := cfg.Namespace + ":documents"

	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Sugar.Warnf("cannot reach redis at %s (%v), falling back to memory slot", cfg.RedisAddr, err)
			return NewMemorySlot()
		}
		logger.Sugar.Infof("durable slot: redis key %q at %s", key, cfg.RedisAddr)
		return NewRedisSlot(client, key)
	case "mongo":
		s, err := OpenMongoSlot(ctx, cfg, key)
		if err != nil {
			logger.Sugar.Warnf("cannot reach mongodb (%v), falling back to memory slot", err)
			return NewMemorySlot()
		}
		logger.Sugar.Infof("durable slot: mongo record %q in %s", key, cfg.MongoDatabase)
		return s
	case "", "memory":
		return NewMemorySlot()
	default:
		logger.Sugar.Warnf("unknown storage backend %q, using memory slot", cfg.Backend)
		return NewMemorySlot()
	}
}

// MemorySlot is an in-process slot used for tests and the zero-config dev run.
type MemorySlot struct {
	mu      sync.RWMutex
	data    []byte
	present bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Read(ctx context.Context) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present {
		return nil, false, nil
	}
	return append([]byte(nil), m.data...), true, nil
}

func (m *MemorySlot) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.present = true
	return nil
}

func (m *MemorySlot) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.present = false
	return nil
}

func (m *MemorySlot) Backend() string { return "memory" }

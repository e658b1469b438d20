package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tgshop/miniapp-backend/pkg/db/models"
	"github.com/tgshop/miniapp-backend/pkg/redis"
)

// ErrNotFound is returned by Storage.Get when nothing is stored under the key.
var ErrNotFound = errors.New("cart: key not found")

// Storage is the durable key-value boundary a Store persists to.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type memoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStorage returns a process-local Storage.
func NewMemoryStorage() Storage {
	return &memoryStorage{data: map[string]string{}}
}

func (m *memoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(name string) string
}

type redisStorage struct {
	client redisKV
}

// NewRedisStorage persists carts in redis under the tgshop:cart namespace.
func NewRedisStorage(client redisKV) Storage {
	return &redisStorage{client: client}
}

func (r *redisStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.client.CartKey(key))
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *redisStorage) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.CartKey(key), value, 0)
}

type dbStorage struct {
	conn *gorm.DB
}

// NewDBStorage persists carts as rows of the kv_entries table.
func NewDBStorage(conn *gorm.DB) Storage {
	return &dbStorage{conn: conn}
}

func (d *dbStorage) Get(ctx context.Context, key string) (string, error) {
	var entry models.KVEntry
	err := d.conn.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (d *dbStorage) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return d.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

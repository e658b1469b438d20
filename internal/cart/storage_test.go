package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tgshop/miniapp-backend/pkg/db/models"
	"github.com/tgshop/miniapp-backend/pkg/redis"
)

func setupKVTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KVEntry{}))
	return db
}

func TestDBStorageUpsert(t *testing.T) {
	ctx := context.Background()
	storage := NewDBStorage(setupKVTestDB(t))

	_, err := storage.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, storage.Set(ctx, DefaultKey, "[]"))
	require.NoError(t, storage.Set(ctx, DefaultKey, `[{"id":1}]`))

	got, err := storage.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, got)
}

func TestStoreRoundTripThroughDB(t *testing.T) {
	ctx := context.Background()
	storage := NewDBStorage(setupKVTestDB(t))

	s := Open(ctx, storage)
	require.NoError(t, s.Add(ctx, coffee()))
	require.NoError(t, s.Add(ctx, tea()))
	require.NoError(t, s.Add(ctx, coffee()))

	reloaded := Open(ctx, storage)
	require.Equal(t, []int64{1, 2}, reloaded.IDs())
	item, ok := reloaded.Get(1)
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, reloaded.Total().Equal(decimal.RequireFromString("9.25")))
}

type fakeRedisKV struct {
	data map[string]string
}

func (f *fakeRedisKV) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeRedisKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeRedisKV) CartKey(name string) string {
	return "tgshop:cart:" + name
}

func TestRedisStorageNamespacesKeys(t *testing.T) {
	ctx := context.Background()
	kv := &fakeRedisKV{data: map[string]string{}}
	storage := NewRedisStorage(kv)

	_, err := storage.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)

	s := Open(ctx, storage)
	require.NoError(t, s.Add(ctx, tea()))

	raw, ok := kv.data["tgshop:cart:cart"]
	require.True(t, ok, "expected namespaced key, got %v", kv.data)
	assert.Contains(t, raw, `"name":"Iced Tea"`)
	assert.Equal(t, 1, Open(ctx, storage).Len())
}

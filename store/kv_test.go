package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kv.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func exerciseKV(t *testing.T, kv KV) {
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Put(ctx, "menu", []byte(`[1]`)))
	v, found, err := kv.Get(ctx, "menu")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[1]`, string(v))

	require.NoError(t, kv.Put(ctx, "menu", []byte(`[1,2]`)))
	v, _, err = kv.Get(ctx, "menu")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(v))
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	exerciseKV(t, kv)
	assert.ElementsMatch(t, []string{"menu"}, kv.Keys())
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	buf := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", buf))
	buf[0] = 'z'

	v, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v))
}

func TestSQLiteKV(t *testing.T) {
	kv, err := NewSQLiteKV(openTestDB(t))
	require.NoError(t, err)
	exerciseKV(t, kv)
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")
	open := func() *SQLiteKV {
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		require.NoError(t, err)
		kv, err := NewSQLiteKV(db)
		require.NoError(t, err)
		return kv
	}

	require.NoError(t, open().Put(ctx, "orders", []byte(`[]`)))

	v, found, err := open().Get(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(v))
}

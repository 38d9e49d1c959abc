package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplist/internal/config"
	"shoplist/pkg/domain"
)

func TestOpenDocumentStore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	tests := []struct {
		name   string
		cfg    config.Storage
		driver domain.Driver
	}{
		{name: "memory", cfg: config.Storage{Driver: "memory"}, driver: domain.DriverMemory},
		{name: "default sqlite", cfg: config.Storage{SQLitePath: filepath.Join(dir, "default.db")}, driver: domain.DriverSQLite},
		{name: "sqlite mixed case", cfg: config.Storage{Driver: " SQLite ", SQLitePath: filepath.Join(dir, "mixed.db")}, driver: domain.DriverSQLite},
		{name: "fs", cfg: config.Storage{Driver: "fs", FSRoot: filepath.Join(dir, "docs")}, driver: domain.DriverFS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := OpenDocumentStore(context.Background(), tt.cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = CloseDocumentStore(store) })
			assert.Equal(t, tt.driver, store.Driver())

			ctx := context.Background()
			_, err = store.Load(ctx, "list")
			require.ErrorIs(t, err, domain.ErrDocumentNotFound)
			require.NoError(t, store.Save(ctx, "list", []byte(`[]`)))
			doc, err := store.Load(ctx, "list")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(doc))
		})
	}
}

func TestOpenDocumentStoreErrors(t *testing.T) {
	t.Parallel()
	_, err := OpenDocumentStore(context.Background(), config.Storage{Driver: "floppy"})
	require.ErrorContains(t, err, "unknown storage driver")

	store, err := OpenDocumentStore(context.Background(), config.Storage{Driver: "s3"})
	require.Error(t, err, "s3 needs a bucket")
	assert.Nil(t, store)
}

func TestServiceOverSQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := config.Storage{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "list.db")}

	store, err := OpenDocumentStore(ctx, cfg)
	require.NoError(t, err)
	svc, err := NewService(ctx, store)
	require.NoError(t, err)
	svc.MergeRecipeIngredients(ctx, "Soup", []domain.Ingredient{ing("Leek", 1, "")})
	require.NoError(t, svc.Close(ctx))
	require.NoError(t, CloseDocumentStore(store))

	store, err = OpenDocumentStore(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDocumentStore(store) })
	reloaded, err := NewService(ctx, store)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reloaded.Close(ctx) })
	assert.Equal(t, []string{"leek"}, names(reloaded.Entries()))
}

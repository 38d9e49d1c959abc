package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"shoplist/pkg/domain"
)

func TestSQLiteStorePersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	store, err := NewStore(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Load(ctx, "shopping-list"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not found before first save, got %v", err)
	}
	if err := store.Save(ctx, "shopping-list", []byte(`[{"name":"carrot"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "shopping-list", []byte(`[{"name":"salt"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_ = store.Close()

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	t.Cleanup(func() { _ = reloaded.Close() })
	got, err := reloaded.Load(ctx, "shopping-list")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `[{"name":"salt"}]` {
		t.Fatalf("unexpected payload %s", got)
	}
	var rows int
	if err := reloaded.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected a single state row, got %d", rows)
	}
	if reloaded.Path() != path || reloaded.Driver() != domain.DriverSQLite {
		t.Fatalf("unexpected path/driver %s %s", reloaded.Path(), reloaded.Driver())
	}
}

func TestSQLiteStoreKeysAreIndependent(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	if err := store.Save(ctx, "a", []byte(`[]`)); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if _, err := store.Load(ctx, "b"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected b missing, got %v", err)
	}
}

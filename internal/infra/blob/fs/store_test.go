package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shoplist/pkg/domain"
)

func TestStoreSaveLoadReplace(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Load(ctx, "shopping-list"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Save(ctx, "shopping-list", []byte(`[{"name":"a"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "shopping-list", []byte(`[]`)); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := store.Load(ctx, "shopping-list")
	if err != nil || string(got) != `[]` {
		t.Fatalf("load: %q %v", got, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 || entries[0].Name() != "shopping-list.json" {
		t.Fatalf("expected only the document file, got %v", entries)
	}
}

func TestStoreNestedKeys(t *testing.T) {
	root := t.TempDir()
	store, _ := New(root)
	if err := store.Save(context.Background(), "households/42/list", []byte(`[]`)); err != nil {
		t.Fatalf("save nested: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "households", "42", "list.json")); err != nil {
		t.Fatalf("expected nested file: %v", err)
	}
}

func TestStoreRejectsBadKeys(t *testing.T) {
	store, _ := New(t.TempDir())
	ctx := context.Background()
	for _, key := range []string{"", "  ", "../escape", "/abs"} {
		if err := store.Save(ctx, key, []byte(`[]`)); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
		if _, err := store.Load(ctx, key); err == nil {
			t.Fatalf("expected load error for key %q", key)
		}
	}
	if store.Driver() != domain.DriverFS {
		t.Fatalf("unexpected driver")
	}
}

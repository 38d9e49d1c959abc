package s3

import (
	"context"
	"errors"
	"testing"

	"shoplist/pkg/domain"
)

func TestStore_MockedRoundTrip(t *testing.T) {
	store, rt := newMock()
	store.prefix = "lists/"
	ctx := context.Background()

	if _, err := store.Load(ctx, "shopping-list"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Save(ctx, "shopping-list", []byte(`[{"name":"milk"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "shopping-list", []byte(`[{"name":"eggs"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	obj, ok := rt.object("lists/shopping-list")
	if !ok {
		t.Fatalf("expected object under prefixed key")
	}
	if obj.contentType != contentTypeJSON {
		t.Fatalf("expected json content type, got %q", obj.contentType)
	}
	got, err := store.Load(ctx, "shopping-list")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `[{"name":"eggs"}]` {
		t.Fatalf("unexpected document %s", got)
	}
	if store.Driver() != domain.DriverS3 || store.Bucket() != "mock-bucket" {
		t.Fatalf("unexpected driver/bucket")
	}
}

func TestStore_SaveFailure(t *testing.T) {
	store, rt := newMock()
	rt.failPuts = true
	if err := store.Save(context.Background(), "k", []byte(`[]`)); err == nil {
		t.Fatalf("expected put failure")
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestNewWithStaticCredentials(t *testing.T) {
	store, err := New(context.Background(), Config{
		Bucket:          "lists",
		Endpoint:        "http://minio.local:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		PathStyle:       true,
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if store.Bucket() != "lists" {
		t.Fatalf("unexpected bucket %s", store.Bucket())
	}
}

func TestDecodeChunked(t *testing.T) {
	got, ok := decodeChunked([]byte("5\r\nhello\r\n0\r\n\r\n"))
	if !ok || string(got) != "hello" {
		t.Fatalf("decode: %q %v", got, ok)
	}
	if _, ok := decodeChunked([]byte("plain body")); ok {
		t.Fatalf("expected plain body to pass through")
	}
}

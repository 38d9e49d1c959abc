package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"shoplist/pkg/domain"
)

type fakeClient struct {
	values  map[string]string
	failGet error
	failSet error
	closed  bool
}

func newFakeClient() *fakeClient { return &fakeClient{values: map[string]string{}} }

func (f *fakeClient) Get(ctx context.Context, key string) *goredis.StringCmd {
	cmd := goredis.NewStringCmd(ctx, "get", key)
	switch v, ok := f.values[key]; {
	case f.failGet != nil:
		cmd.SetErr(f.failGet)
	case !ok:
		cmd.SetErr(goredis.Nil)
	default:
		cmd.SetVal(v)
	}
	return cmd
}

func (f *fakeClient) Set(ctx context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx, "set", key, value)
	if f.failSet != nil {
		cmd.SetErr(f.failSet)
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeClient) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx, "ping")
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestStoreRoundTrip(t *testing.T) {
	fc := newFakeClient()
	store := newWithClient(fc, "")
	ctx := context.Background()

	if _, err := store.Load(ctx, "shopping-list"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Save(ctx, "shopping-list", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := fc.values["shoplist:shopping-list"]; !ok {
		t.Fatalf("expected prefixed key, got %v", fc.values)
	}
	got, err := store.Load(ctx, "shopping-list")
	if err != nil || string(got) != `[]` {
		t.Fatalf("load: %q %v", got, err)
	}
	if store.Driver() != domain.DriverRedis {
		t.Fatalf("unexpected driver")
	}
	if err := store.Close(); err != nil || !fc.closed {
		t.Fatalf("expected client closed")
	}
}

func TestStoreErrors(t *testing.T) {
	fc := newFakeClient()
	store := newWithClient(fc, "test:")
	ctx := context.Background()

	fc.failSet = errors.New("READONLY")
	if err := store.Save(ctx, "k", []byte(`[]`)); err == nil {
		t.Fatalf("expected set error")
	}
	fc.failGet = errors.New("connection refused")
	_, err := store.Load(ctx, "k")
	if err == nil || errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestNewRequiresAddr(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected addr error")
	}
}

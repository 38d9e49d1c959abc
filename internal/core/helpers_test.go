package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shoplist/internal/infra/persistence/memory"
	"shoplist/pkg/domain"
)

type logRecord struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	records []logRecord
}

func (l *recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, logRecord{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.add("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.add("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.add("error", msg, args) }

func (l *recordingLogger) has(level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.level == level && strings.Contains(r.msg, substr) {
			return true
		}
	}
	return false
}

// scriptedStore is a DocumentStore with injectable load and save behaviour.
type scriptedStore struct {
	mu      sync.Mutex
	loadDoc []byte
	loadErr error
	saveErr error
	saved   [][]byte

	// when set, each Save signals started and waits on release
	started chan struct{}
	release chan struct{}
}

func (s *scriptedStore) Driver() domain.Driver { return domain.DriverMemory }

func (s *scriptedStore) Load(context.Context, string) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.loadDoc == nil {
		return nil, fmt.Errorf("scripted: %w", domain.ErrDocumentNotFound)
	}
	return s.loadDoc, nil
}

func (s *scriptedStore) Save(_ context.Context, _ string, doc []byte) error {
	if s.started != nil {
		s.started <- struct{}{}
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, append([]byte(nil), doc...))
	return nil
}

func (s *scriptedStore) savedDocs() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.saved...)
}

var errBackendDown = errors.New("backend down")

func newTestService(t *testing.T, opts ...Option) (*Service, *memory.Store) {
	t.Helper()
	backend := memory.New()
	svc, err := NewService(context.Background(), backend, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = svc.Close(ctx)
	})
	return svc, backend
}

func flush(t *testing.T, svc *Service) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Flush(ctx))
}

func names(entries []domain.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func ing(name string, amount float64, units string) domain.Ingredient {
	return domain.Ingredient{Name: name, Amount: amount, Units: units}
}

package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"

	"shoplist/pkg/domain"
)

// DefaultDocumentKey is the key the shopping list document is stored under.
const DefaultDocumentKey = "shopping-list"

// Service owns the consolidated shopping list. Every mutation runs to
// completion under one lock, re-sorts the collection and enqueues a snapshot
// of the whole list for an asynchronous save.
type Service struct {
	mu      sync.Mutex
	store   *entryStore
	saver   *saver
	backend domain.DocumentStore
	key     string
	logger  Logger
	metrics MetricsRecorder
}

// Option configures a Service.
type Option func(*options)

type options struct {
	key         string
	logger      Logger
	metrics     MetricsRecorder
	saveTimeout time.Duration
	locale      language.Tag
}

// WithDocumentKey overrides DefaultDocumentKey.
func WithDocumentKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithSaveTimeout bounds each individual background save.
func WithSaveTimeout(d time.Duration) Option {
	return func(o *options) { o.saveTimeout = d }
}

// WithLocale selects the collation used to order entries.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// NewService loads the shopping list document from backend and starts the
// background saver. A missing document yields an empty list; a malformed one
// is logged and discarded. Only a backend failure is returned as an error.
func NewService(ctx context.Context, backend domain.DocumentStore, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("document store is required")
	}
	o := options{
		key:     DefaultDocumentKey,
		logger:  noopLogger{},
		metrics: noopMetrics{},
		locale:  language.Und,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Service{
		store:   newEntryStore(o.locale),
		backend: backend,
		key:     o.key,
		logger:  o.logger,
		metrics: o.metrics,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	s.saver = newSaver(backend, o.key, o.saveTimeout, o.logger, o.metrics)
	return s, nil
}

func (s *Service) load(ctx context.Context) error {
	start := time.Now()
	doc, err := s.backend.Load(ctx, s.key)
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		s.logger.Info("no saved shopping list, starting empty", "key", s.key, "driver", s.backend.Driver())
	case err != nil:
		s.metrics.Observe(ctx, opLoad, false, time.Since(start))
		return fmt.Errorf("load shopping list %q: %w", s.key, err)
	default:
		entries, derr := decodeDocument(doc)
		if derr != nil {
			s.logger.Warn("discarding malformed shopping list", "key", s.key, "error", derr)
			break
		}
		s.store.reset(entries)
		s.logger.Info("shopping list loaded", "key", s.key, "driver", s.backend.Driver(), "entries", len(entries))
	}
	s.metrics.Observe(ctx, opLoad, true, time.Since(start))
	s.reportSize(len(s.store.entries))
	return nil
}

// Entries returns a copy of the current list, ordered by normalized name.
func (s *Service) Entries() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.snapshot()
}

// Entry looks up one entry by name (normalized before matching).
func (s *Service) Entry(name string) (domain.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.store.index(domain.NormalizeName(name))
	if i < 0 {
		return domain.Entry{}, false
	}
	return s.store.entries[i].Clone(), true
}

// Key returns the document key the list is persisted under.
func (s *Service) Key() string { return s.key }

// MergeRecipeIngredients folds a batch of already-scaled ingredients from one
// recipe into the list. Each ingredient records one contribution by the
// recipe, so merging the same recipe twice needs two withdrawals to undo.
func (s *Service) MergeRecipeIngredients(ctx context.Context, recipeName string, ingredients []domain.Ingredient) {
	recipe := domain.NormalizeName(recipeName)
	s.mutate(ctx, opMerge, func(st *entryStore) {
		for _, ing := range ingredients {
			st.merge(recipe, ing)
		}
		s.logger.Debug("recipe merged", "recipe", recipe, "ingredients", len(ingredients))
	})
}

// WithdrawRecipeContribution removes one contribution of recipeName from
// every entry. Entries left without contributors are deleted; the rest shrink
// proportionally to the number of contributors remaining.
func (s *Service) WithdrawRecipeContribution(ctx context.Context, recipeName string) {
	recipe := domain.NormalizeName(recipeName)
	s.mutate(ctx, opWithdraw, func(st *entryStore) {
		changed, removed := st.withdraw(recipe)
		s.logger.Debug("recipe withdrawn", "recipe", recipe, "changed", changed, "removed", removed)
	})
}

// RemoveEntry deletes the entry for name, reporting whether one existed.
func (s *Service) RemoveEntry(ctx context.Context, name string) bool {
	var found bool
	s.mutate(ctx, opRemove, func(st *entryStore) {
		found = st.remove(domain.NormalizeName(name))
	})
	return found
}

// SetAbsoluteAmount overrides an entry's total without touching its unit
// groups and marks it as manually overridden. A non-positive amount removes
// the entry. It reports whether the entry existed.
func (s *Service) SetAbsoluteAmount(ctx context.Context, name string, amount float64) bool {
	var found bool
	s.mutate(ctx, opSetAmount, func(st *entryStore) {
		found = st.setAmount(domain.NormalizeName(name), amount)
	})
	return found
}

// ClearAll empties the list.
func (s *Service) ClearAll(ctx context.Context) {
	s.mutate(ctx, opClear, func(st *entryStore) {
		st.entries = nil
	})
}

// Flush waits until every mutation made so far has been handed to the
// document store.
func (s *Service) Flush(ctx context.Context) error {
	return s.saver.flush(ctx)
}

// Close flushes pending saves and stops the background saver.
func (s *Service) Close(ctx context.Context) error {
	return s.saver.close(ctx)
}

func (s *Service) mutate(ctx context.Context, op string, fn func(*entryStore)) {
	start := time.Now()

	s.mu.Lock()
	fn(s.store)
	s.store.sort()
	size := len(s.store.entries)
	doc, err := encodeDocument(s.store.entries)
	if err == nil {
		// enqueued under the lock so snapshots reach the saver in mutation order
		s.saver.enqueue(doc)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("snapshot shopping list failed", "operation", op, "error", err)
	}
	s.metrics.Observe(ctx, op, err == nil, time.Since(start))
	s.reportSize(size)
}

func (s *Service) reportSize(n int) {
	if g, ok := s.metrics.(entriesGauge); ok {
		g.SetEntries(n)
	}
}

package core

import (
	"context"
	"sync"
	"time"

	"shoplist/pkg/domain"
)

const defaultSaveTimeout = 10 * time.Second

// saver writes document snapshots on a single background goroutine. Enqueue
// never blocks: a snapshot that has not started writing yet is replaced by a
// newer one, and writes happen in enqueue order, so an older snapshot never
// lands after a newer one.
type saver struct {
	store   domain.DocumentStore
	key     string
	timeout time.Duration
	logger  Logger
	metrics MetricsRecorder

	mu         sync.Mutex
	pending    []byte
	hasPending bool
	pendingSeq uint64
	queued     uint64 // seq of the newest enqueued snapshot
	written    uint64 // seq of the newest snapshot handed to the store
	waiters    []flushWaiter
	closed     bool

	wake   chan struct{}
	stop   chan struct{}
	exited chan struct{}
}

type flushWaiter struct {
	seq uint64
	ch  chan struct{}
}

func newSaver(store domain.DocumentStore, key string, timeout time.Duration, logger Logger, metrics MetricsRecorder) *saver {
	if timeout <= 0 {
		timeout = defaultSaveTimeout
	}
	s := &saver{
		store:   store,
		key:     key,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *saver) enqueue(doc []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("shopping list save dropped after close", "key", s.key)
		return
	}
	s.queued++
	s.pending = doc
	s.pendingSeq = s.queued
	s.hasPending = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *saver) run() {
	defer close(s.exited)
	for {
		select {
		case <-s.wake:
			s.drain()
		case <-s.stop:
			s.drain()
			return
		}
	}
}

func (s *saver) drain() {
	for {
		s.mu.Lock()
		if !s.hasPending {
			s.mu.Unlock()
			return
		}
		doc, seq := s.pending, s.pendingSeq
		s.pending, s.hasPending = nil, false
		s.mu.Unlock()

		s.write(doc)

		s.mu.Lock()
		s.written = seq
		kept := s.waiters[:0]
		for _, w := range s.waiters {
			if w.seq <= s.written {
				close(w.ch)
				continue
			}
			kept = append(kept, w)
		}
		s.waiters = kept
		s.mu.Unlock()
	}
}

// write performs one save. Failures are logged and not retried; the next
// mutation's snapshot supersedes the lost one.
func (s *saver) write(doc []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	start := time.Now()
	err := s.store.Save(ctx, s.key, doc)
	s.metrics.Observe(ctx, opSave, err == nil, time.Since(start))
	if err != nil {
		s.logger.Error("save shopping list failed", "key", s.key, "driver", s.store.Driver(), "error", err)
		return
	}
	s.logger.Debug("shopping list saved", "key", s.key, "bytes", len(doc))
}

// flush blocks until every snapshot enqueued before the call has been handed
// to the store, or ctx is done.
func (s *saver) flush(ctx context.Context) error {
	s.mu.Lock()
	target := s.queued
	if s.written >= target {
		s.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	s.waiters = append(s.waiters, flushWaiter{seq: target, ch: ch})
	s.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close drains pending work and stops the goroutine. Later enqueues are
// dropped.
func (s *saver) close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	close(s.stop)

	select {
	case <-s.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

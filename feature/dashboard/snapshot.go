package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/reguiia/turnaround-vision-dashboard/core/schema"
	"github.com/reguiia/turnaround-vision-dashboard/core/store"
)

// Snapshot is the session-scoped cache of all nine tables.
//
// It holds one change-feed subscription for the whole table set, established
// at construction and released by Close; consumers never subscribe per
// request. Any change event from any session triggers a full re-fetch,
// giving eventually-consistent, last-writer-wins visibility. Refreshes are
// deduplicated through singleflight so a burst of events costs one fetch.
type Snapshot struct {
	store  store.Store
	logger *zap.Logger

	mu     sync.RWMutex
	tables map[string][]store.Record
	loaded bool

	sf     singleflight.Group
	cancel func()
	done   chan struct{}
}

// NewSnapshot creates the cache and starts its change-feed listener.
func NewSnapshot(st store.Store, logger *zap.Logger) *Snapshot {
	events, cancel := st.Subscribe(schema.TableNames()...)
	s := &Snapshot{
		store:  st,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.listen(events)
	return s
}

func (s *Snapshot) listen(events <-chan store.Event) {
	defer close(s.done)
	for ev := range events {
		if err := s.Refresh(context.Background()); err != nil {
			s.logger.Warn("snapshot refresh failed",
				zap.String("table", ev.Table),
				zap.String("kind", string(ev.Kind)),
				zap.Error(err),
			)
		}
	}
}

// Refresh re-fetches all nine tables. Concurrent callers share one fetch.
func (s *Snapshot) Refresh(ctx context.Context) error {
	_, err, _ := s.sf.Do("refresh", func() (any, error) {
		tables := make(map[string][]store.Record, len(schema.TableNames()))
		for _, name := range schema.TableNames() {
			rows, err := s.store.SelectAll(ctx, name)
			if err != nil {
				return nil, err
			}
			tables[name] = rows
		}

		s.mu.Lock()
		s.tables = tables
		s.loaded = true
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Tables returns the cached per-table data, fetching on first use.
func (s *Snapshot) Tables(ctx context.Context) (map[string][]store.Record, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]store.Record, len(s.tables))
	for name, rows := range s.tables {
		out[name] = rows
	}
	return out, nil
}

// Close releases the change-feed subscription and waits for the listener.
func (s *Snapshot) Close() {
	s.cancel()
	<-s.done
}

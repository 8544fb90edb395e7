package engine

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Snapshot is one immutable load of the dataset. Readers may share it
// freely; it is never mutated after construction.
type Snapshot struct {
	ID        uuid.UUID
	SourceURL string
	LoadedAt  time.Time
	Elapsed   time.Duration
	Table     Table
}

// Store owns the current Snapshot. It replaces an ambient memoized
// loader with an explicit handle: Load fetches at most once per process
// lifetime, Refresh is the invalidation the memo never had.
type Store struct {
	url     string
	client  *http.Client
	log     *zap.Logger
	group   singleflight.Group
	current atomic.Pointer[Snapshot]
}

func NewStore(url string, client *http.Client, log *zap.Logger) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{url: url, client: client, log: log}
}

// Snapshot returns the current snapshot, nil until the first
// successful Load.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Load returns the cached snapshot, fetching it on the first call.
// Concurrent first callers share a single upstream fetch.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	return s.fetch(ctx)
}

// Refresh re-fetches unconditionally and swaps the new snapshot in.
// The previous snapshot stays valid for readers still holding it.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	return s.fetch(ctx)
}

func (s *Store) fetch(ctx context.Context) (*Snapshot, error) {
	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		start := time.Now()
		s.log.Info("loading dataset", zap.String("url", s.url))

		table, err := fetchTable(ctx, s.client, s.url)
		if err != nil {
			return nil, err
		}
		snap := &Snapshot{
			ID:        uuid.New(),
			SourceURL: s.url,
			LoadedAt:  time.Now(),
			Elapsed:   time.Since(start),
			Table:     table,
		}
		s.current.Store(snap)
		s.log.Info("dataset loaded",
			zap.Int("rows", len(table)),
			zap.Duration("elapsed", snap.Elapsed),
			zap.String("snapshot", snap.ID.String()))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

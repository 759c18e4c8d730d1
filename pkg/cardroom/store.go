package cardroom

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store holds every table and serializes access to each one. Tables are
// independent: each has its own lock, and no transition ever touches two
// tables. A transition runs read-validate-write under the table's lock, so a
// concurrently committed transition can never be applied over stale data.
type Store struct {
	logger   logrus.FieldLogger
	recorder Recorder

	mu     sync.RWMutex
	tables map[string]*tableEntry
}

type tableEntry struct {
	mu          sync.Mutex
	table       *Table
	subscribers map[*Subscriber]struct{}

	// committed records queued for the recorder, in commit order. saveMu
	// admits one flusher at a time so writes never reorder or overlap.
	saveMu  sync.Mutex
	pending []*Record
}

// Subscriber receives a fresh snapshot after every committed transition
type Subscriber struct {
	playerID int64
	ch       chan *Snapshot
}

// C is the snapshot channel
func (s *Subscriber) C() <-chan *Snapshot {
	return s.ch
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithRecorder adds write-through persistence of committed transitions
func WithRecorder(recorder Recorder) StoreOption {
	return func(s *Store) {
		s.recorder = recorder
	}
}

// NewStore returns an empty store
func NewStore(logger logrus.FieldLogger, options ...StoreOption) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	store := &Store{
		logger: logger,
		tables: make(map[string]*tableEntry),
	}

	for _, option := range options {
		option(store)
	}

	return store
}

// CreateTable creates a new idle table. Fails if the id is taken.
func (s *Store) CreateTable(ctx context.Context, id string, variant Variant, smallBlind, bigBlind, seatCount, minPlayers int) (*Snapshot, error) {
	table, err := NewTable(id, variant, smallBlind, bigBlind, seatCount, minPlayers)
	if err != nil {
		return nil, err
	}

	entry := &tableEntry{
		table:       table,
		subscribers: make(map[*Subscriber]struct{}),
	}

	s.mu.Lock()
	if _, ok := s.tables[id]; ok {
		s.mu.Unlock()
		return nil, resourceError("table %s already exists", id)
	}

	s.tables[id] = entry
	s.mu.Unlock()

	entry.mu.Lock()
	s.enqueueRecord(entry)
	entry.mu.Unlock()
	s.flushPending(ctx, entry)

	s.logger.WithFields(logrus.Fields{
		"table":   id,
		"variant": variant,
	}).Info("table created")

	return table.Snapshot(0), nil
}

// Restore loads a persisted table at boot. Fails if the id is taken.
func (s *Store) Restore(record *Record) error {
	table, err := RestoreTable(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[table.ID]; ok {
		return resourceError("table %s already exists", table.ID)
	}

	s.tables[table.ID] = &tableEntry{
		table:       table,
		subscribers: make(map[*Subscriber]struct{}),
	}

	return nil
}

func (s *Store) entry(id string) (*tableEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.tables[id]
	if !ok {
		return nil, resourceError("table %s not found", id)
	}

	return entry, nil
}

// Update runs fn as the table's one serialized transition. On success the new
// state is pushed to subscribers and written through to the recorder, and the
// viewer's snapshot is returned. On error nothing is published. The recorder
// write happens after the table's lock is released, so a slow recorder never
// stalls play on the table.
func (s *Store) Update(ctx context.Context, id string, viewerID int64, fn func(*Table) error) (*Snapshot, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()

	if err := fn(entry.table); err != nil {
		entry.mu.Unlock()
		return nil, err
	}

	for subscriber := range entry.subscribers {
		select {
		case subscriber.ch <- entry.table.Snapshot(subscriber.playerID):
		default:
			// slow consumer; it will catch up on the next transition
		}
	}

	s.enqueueRecord(entry)
	snapshot := entry.table.Snapshot(viewerID)
	entry.mu.Unlock()

	s.flushPending(ctx, entry)

	return snapshot, nil
}

// View returns the viewer's snapshot of the table
func (s *Store) View(ctx context.Context, id string, viewerID int64) (*Snapshot, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.table.Snapshot(viewerID), nil
}

// BettingTables returns the ids of tables currently in a betting street
func (s *Store) BettingTables() []string {
	s.mu.RLock()
	entries := make(map[string]*tableEntry, len(s.tables))
	for id, entry := range s.tables {
		entries[id] = entry
	}
	s.mu.RUnlock()

	ids := make([]string, 0, len(entries))
	for id, entry := range entries {
		entry.mu.Lock()
		if entry.table.Stage.IsBetting() {
			ids = append(ids, id)
		}
		entry.mu.Unlock()
	}

	return ids
}

// Subscribe registers for snapshots of the table, rendered for the player
func (s *Store) Subscribe(id string, playerID int64) (*Subscriber, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	subscriber := &Subscriber{
		playerID: playerID,
		ch:       make(chan *Snapshot, 8),
	}

	entry.mu.Lock()
	entry.subscribers[subscriber] = struct{}{}

	// prime the stream with the current state
	subscriber.ch <- entry.table.Snapshot(playerID)
	entry.mu.Unlock()

	return subscriber, nil
}

// Unsubscribe removes the subscriber and closes its channel
func (s *Store) Unsubscribe(id string, subscriber *Subscriber) {
	entry, err := s.entry(id)
	if err != nil {
		return
	}

	entry.mu.Lock()
	if _, ok := entry.subscribers[subscriber]; ok {
		delete(entry.subscribers, subscriber)
		close(subscriber.ch)
	}
	entry.mu.Unlock()
}

// enqueueRecord snapshots the committed state for the recorder. The caller
// must hold the entry's mutex.
func (s *Store) enqueueRecord(entry *tableEntry) {
	if s.recorder == nil {
		return
	}

	entry.pending = append(entry.pending, entry.table.Record())
}

// flushPending drains queued records in commit order. Persistence is
// best-effort write-through; a failed save is logged, not fatal, since the
// in-memory aggregate remains authoritative. A committer that loses the flush
// lock leaves its record for the holder, and the holder re-checks the queue
// after unlocking so no record is left behind.
func (s *Store) flushPending(ctx context.Context, entry *tableEntry) {
	for s.recorder != nil {
		if !entry.saveMu.TryLock() {
			return
		}

		for {
			entry.mu.Lock()
			if len(entry.pending) == 0 {
				entry.mu.Unlock()
				break
			}

			record := entry.pending[0]
			entry.pending = entry.pending[1:]
			entry.mu.Unlock()

			if err := s.recorder.Save(ctx, record); err != nil {
				s.logger.WithError(err).WithField("table", record.ID).Error("could not persist table")
			}
		}

		entry.saveMu.Unlock()

		entry.mu.Lock()
		done := len(entry.pending) == 0
		entry.mu.Unlock()
		if done {
			return
		}
	}
}

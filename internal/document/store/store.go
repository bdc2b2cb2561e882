// Package store owns the in-memory document collection and keeps the durable
// slot authoritative: every successful mutation rewrites the full collection
// snapshot before the operation returns. There is no partial persistence and
// no transaction log; the slot always holds the last successful mutation's
// snapshot.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inkweld/inkweld/backend/go-services/internal/document"
	"github.com/inkweld/inkweld/backend/go-services/internal/document/slot"
	"github.com/inkweld/inkweld/backend/go-services/internal/share"
	"github.com/inkweld/inkweld/backend/go-services/pkg/logger"
	"github.com/inkweld/inkweld/backend/go-services/pkg/metrics"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Store is the sole owner of the document collection. Consumers receive
// copies and must route every mutation back through its operations.
type Store struct {
	mu    sync.RWMutex
	slot  slot.Slot
	docs  []*document.Document // insertion order; listing sorts by updatedAt
	index map[string]*document.Document
}

func New(s slot.Slot) *Store {
	return &Store{
		slot:  s,
		docs:  []*document.Document{},
		index: make(map[string]*document.Document),
	}
}

// Load reads the persisted collection. An absent value yields an empty
// collection; a corrupt value is logged and degrades to empty. Legacy
// records migrate inside document.DecodeCollection, once, here — the shape
// is never re-sniffed afterwards. Persistence failures never block startup.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = []*document.Document{}
	s.index = make(map[string]*document.Document)

	data, ok, err := s.slot.Read(ctx)
	if err != nil {
		logger.Sugar.Errorf("error loading documents from %s slot: %v", s.slot.Backend(), err)
		return
	}
	if !ok {
		return
	}
	docs, err := document.DecodeCollection(data)
	if err != nil {
		logger.Sugar.Errorf("error decoding persisted documents, starting empty: %v", err)
		return
	}
	s.docs = docs
	for _, d := range docs {
		s.index[d.ID] = d
	}
	logger.Sugar.Infof("loaded %d documents from %s slot", len(docs), s.slot.Backend())
}

// Get returns a copy of the document or ErrNotFound. No side effects.
func (s *Store) Get(id string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d.Clone(), nil
}

// List returns copies of all documents, most recently updated first.
func (s *Store) List() []*document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*document.Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out
}

// Create allocates a new document with a fresh id, the default title and a
// single default page, appends it to the collection, persists and returns a
// copy.
func (s *Store) Create(ctx context.Context) *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowMillis()
	d := &document.Document{
		ID:        s.newID(),
		Title:     document.DefaultTitle,
		Content:   []string{document.DefaultPage},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.docs = append(s.docs, d)
	s.index[d.ID] = d
	metrics.StoreMutations.WithLabelValues("create").Inc()
	s.persist(ctx)
	return d.Clone()
}

// Update replaces the stored document by id, refreshing updatedAt strictly
// above its previous value. An unknown id is a silent no-op: callers are
// expected to only update documents they previously obtained from the store.
func (s *Store) Update(ctx context.Context, doc *document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.index[doc.ID]
	if !ok {
		logger.Sugar.Debugf("update for unknown document %s dropped", doc.ID)
		return
	}
	stored.Title = doc.Title
	stored.Content = append([]string(nil), doc.Content...)
	stored.Password = doc.Password
	stored.UpdatedAt = bump(stored.UpdatedAt)
	metrics.StoreMutations.WithLabelValues("update").Inc()
	s.persist(ctx)
}

// Delete removes the document if present and persists. Deletion is immediate:
// no tombstone, no undo, and an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return
	}
	delete(s.index, id)
	for i, d := range s.docs {
		if d.ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			break
		}
	}
	metrics.StoreMutations.WithLabelValues("delete").Inc()
	s.persist(ctx)
}

// ImportShared turns a decoded share payload into a brand-new document: fresh
// id, provenance-marked title, the flattened blob as a single page, inserted
// at the front of the collection. It never merges into an existing document.
func (s *Store) ImportShared(ctx context.Context, p share.Payload) *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowMillis()
	d := &document.Document{
		ID:        s.newID(),
		Title:     document.SharedTitlePrefix + p.Title,
		Content:   []string{p.Content},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.docs = append([]*document.Document{d}, s.docs...)
	s.index[d.ID] = d
	metrics.StoreMutations.WithLabelValues("import").Inc()
	s.persist(ctx)
	return d.Clone()
}

// persist rewrites the full collection snapshot. A failed write is logged
// and counted; in-memory state diverges from the slot until the next
// successful write. Caller holds the lock.
func (s *Store) persist(ctx context.Context) {
	data, err := document.EncodeCollection(s.docs)
	if err != nil {
		logger.Sugar.Errorf("error encoding documents for persistence: %v", err)
		metrics.PersistFailures.WithLabelValues(s.slot.Backend()).Inc()
		return
	}
	if err := s.slot.Write(ctx, data); err != nil {
		logger.Sugar.Errorf("error saving documents to %s slot: %v", s.slot.Backend(), err)
		metrics.PersistFailures.WithLabelValues(s.slot.Backend()).Inc()
	}
}

// newID asserts id non-collision by regenerating: silently overwriting on a
// collision would break the id-uniqueness invariant the moment it ever fired.
// Caller holds the lock.
func (s *Store) newID() string {
	for {
		id := uuid.NewString()
		if _, exists := s.index[id]; !exists {
			return id
		}
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// bump returns a timestamp strictly greater than prev even under a coarse
// clock, keeping update monotonicity strict.
func bump(prev int64) int64 {
	now := nowMillis()
	if now <= prev {
		return prev + 1
	}
	return now
}

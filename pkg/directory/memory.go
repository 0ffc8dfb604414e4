package directory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mentionkit/pkg/mention"
)

// MemoryStore is a concurrency-safe in-process Store and Writer.
// Types and entities keep insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	tenants map[string]*tenantEntities
}

type tenantEntities struct {
	types  []string
	byType map[string][]Entity
	index  map[string]map[uuid.UUID]int
}

// NewMemoryStore returns a store holding the given entities.
func NewMemoryStore(entities ...Entity) (*MemoryStore, error) {
	s := &MemoryStore{tenants: make(map[string]*tenantEntities)}
	if err := s.Put(context.Background(), entities...); err != nil {
		return nil, err
	}
	return s, nil
}

// AddTenant registers a tenant without entities.
func (s *MemoryStore) AddTenant(_ context.Context, tenantID string) error {
	if tenantID == "" {
		return ErrInvalidEntity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenant(tenantID)
	return nil
}

// Put adds entities, replacing the label of ones already present.
// Nothing is stored when any entity is invalid.
func (s *MemoryStore) Put(_ context.Context, entities ...Entity) error {
	normalized := make([]Entity, len(entities))
	for i, e := range entities {
		n, err := normalizeEntity(e)
		if err != nil {
			return err
		}
		normalized[i] = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range normalized {
		t := s.tenant(e.TenantID)
		ids, ok := t.index[e.Type]
		if !ok {
			ids = make(map[uuid.UUID]int)
			t.index[e.Type] = ids
			t.types = append(t.types, e.Type)
		}
		if pos, ok := ids[e.ID]; ok {
			t.byType[e.Type][pos] = e
			continue
		}
		ids[e.ID] = len(t.byType[e.Type])
		t.byType[e.Type] = append(t.byType[e.Type], e)
	}
	return nil
}

// Lookup implements Store.
func (s *MemoryStore) Lookup(_ context.Context, tenantID, entityType string, id uuid.UUID) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return Entity{}, ErrUnknownTenant
	}
	entityType = mention.NormalizeType(entityType)
	ids, ok := t.index[entityType]
	if !ok {
		return Entity{}, ErrUnsupportedType
	}
	pos, ok := ids[id]
	if !ok {
		return Entity{}, ErrEntityNotFound
	}
	return t.byType[entityType][pos], nil
}

// Search implements Store.
func (s *MemoryStore) Search(_ context.Context, tenantID, query string, limit int) ([]Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, ErrUnknownTenant
	}

	query = strings.ToLower(strings.TrimSpace(query))
	limit = searchLimit(limit)
	out := make([]Entity, 0, limit)
	for _, entityType := range t.types {
		for _, e := range t.byType[entityType] {
			if query != "" && !strings.Contains(strings.ToLower(e.Type+" "+e.Label), query) {
				continue
			}
			out = append(out, e)
			if len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// HasTenant implements Store.
func (s *MemoryStore) HasTenant(_ context.Context, tenantID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tenants[tenantID]
	return ok, nil
}

// Types implements Store.
func (s *MemoryStore) Types(_ context.Context, tenantID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, ErrUnknownTenant
	}
	return slices.Clone(t.types), nil
}

// Must be called with the write lock held.
func (s *MemoryStore) tenant(id string) *tenantEntities {
	t, ok := s.tenants[id]
	if !ok {
		t = &tenantEntities{
			byType: make(map[string][]Entity),
			index:  make(map[string]map[uuid.UUID]int),
		}
		s.tenants[id] = t
	}
	return t
}

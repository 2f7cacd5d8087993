package paper

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	papers map[string]Paper
}

// NewMemoryStore keeps papers in process memory; handy for tests and
// single-shot runs.
func NewMemoryStore() Store {
	return &memoryStore{papers: map[string]Paper{}}
}

func (m *memoryStore) PutPaper(ctx context.Context, p Paper) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.papers[p.ID] = p
	return nil
}

func (m *memoryStore) GetPaper(ctx context.Context, ownerID, id string) (Paper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.papers[id]
	if !ok || p.UserID != ownerID {
		return Paper{}, ErrPaperNotFound
	}
	out := p
	out.Items = make([]Item, len(p.Items))
	copy(out.Items, p.Items)
	return out, nil
}

func (m *memoryStore) ListPapers(ctx context.Context, ownerID, subjectID string) ([]Paper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Paper
	for _, p := range m.papers {
		if p.UserID == ownerID && p.SubjectID == subjectID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryStore) GetItem(ctx context.Context, ownerID, paperID string, position int, subpart *string) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.papers[paperID]
	if !ok || p.UserID != ownerID {
		return Item{}, ErrPaperNotFound
	}
	for _, it := range p.Items {
		if it.Position != position {
			continue
		}
		if subpart == nil || it.Subpart == *subpart {
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

func (m *memoryStore) UpdateItem(ctx context.Context, paperID string, it Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.papers[paperID]
	if !ok {
		return ErrPaperNotFound
	}
	for i := range p.Items {
		if p.Items[i].Seq == it.Seq {
			p.Items[i] = it
			m.papers[paperID] = p
			return nil
		}
	}
	return ErrItemNotFound
}

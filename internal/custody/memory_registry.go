package custody

import (
	"sync"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
)

type MemoryRegistry struct {
	mu     sync.Mutex
	nextId uint64
	// rows keyed by characterId; order preserves insertion for listing.
	rows  map[string]*model.Villain
	order []string
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{rows: make(map[string]*model.Villain)}
}

func (r *MemoryRegistry) Find(characterId string) (model.Villain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[characterId]
	if !ok {
		return model.Villain{}, ErrNotHeld
	}
	return *row, nil
}

func (r *MemoryRegistry) Create(characterId string, holderId uint64) (model.Villain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[characterId]; ok {
		return model.Villain{}, ErrAlreadyHeld
	}

	r.nextId++
	row := &model.Villain{Id: r.nextId, CharacterId: characterId, UserId: holderId}
	r.rows[characterId] = row
	r.order = append(r.order, characterId)
	return *row, nil
}

func (r *MemoryRegistry) Reassign(characterId string, newHolderId uint64) (model.Villain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[characterId]
	if !ok {
		return model.Villain{}, ErrNotHeld
	}

	row.UserId = newHolderId
	return *row, nil
}

func (r *MemoryRegistry) ListByHolder(userId uint64) ([]model.Villain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var held []model.Villain
	for _, characterId := range r.order {
		if row := r.rows[characterId]; row.UserId == userId {
			held = append(held, *row)
		}
	}
	return held, nil
}

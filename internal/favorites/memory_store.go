package favorites

import (
	"sync"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
)

type MemoryStore struct {
	mu     sync.Mutex
	nextId uint64
	rows   []model.Favorite
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(userId uint64, characterId string) (model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.UserId == userId && row.CharacterId == characterId {
			return row, nil
		}
	}

	s.nextId++
	row := model.Favorite{Id: s.nextId, UserId: userId, CharacterId: characterId}
	s.rows = append(s.rows, row)
	return row, nil
}

func (s *MemoryStore) Remove(userId uint64, characterId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.rows[:0]
	for _, row := range s.rows {
		if row.UserId != userId || row.CharacterId != characterId {
			remaining = append(remaining, row)
		}
	}
	s.rows = remaining
	return nil
}

func (s *MemoryStore) ListByUser(userId uint64) ([]model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var mine []model.Favorite
	for _, row := range s.rows {
		if row.UserId == userId {
			mine = append(mine, row)
		}
	}
	return mine, nil
}

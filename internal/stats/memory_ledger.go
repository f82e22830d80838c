package stats

import (
	"sync"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
)

type MemoryLedger struct {
	mu     sync.Mutex
	nextId uint64
	// rows keyed by userId; order preserves row creation for listing.
	rows  map[uint64]*model.UserStats
	order []uint64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{rows: make(map[uint64]*model.UserStats)}
}

func (l *MemoryLedger) Get(userId uint64) (model.UserStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	row, ok := l.rows[userId]
	if !ok {
		return model.UserStats{}, ErrNoStats
	}
	return *row, nil
}

func (l *MemoryLedger) Ensure(userId uint64) (model.UserStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return *l.ensureLocked(userId), nil
}

func (l *MemoryLedger) IncrementCaptured(userId uint64) (model.UserStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := l.ensureLocked(userId)
	row.CapturedCount++
	return *row, nil
}

func (l *MemoryLedger) IncrementExchanged(userId uint64) (model.UserStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := l.ensureLocked(userId)
	row.ExchangedCount++
	return *row, nil
}

func (l *MemoryLedger) ListAll() ([]model.UserStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all := make([]model.UserStats, 0, len(l.order))
	for _, userId := range l.order {
		all = append(all, *l.rows[userId])
	}
	return all, nil
}

func (l *MemoryLedger) ensureLocked(userId uint64) *model.UserStats {
	if row, ok := l.rows[userId]; ok {
		return row
	}

	l.nextId++
	row := &model.UserStats{Id: l.nextId, UserId: userId}
	l.rows[userId] = row
	l.order = append(l.order, userId)
	return row
}

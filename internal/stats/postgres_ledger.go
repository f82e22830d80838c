package stats

import (
	"errors"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"gorm.io/gorm"
)

// PostgresLedger does every mutation in a single upsert statement, so
// concurrent increments for one user serialize on the row and concurrent
// first increments cannot duplicate it.
type PostgresLedger struct {
	db *gorm.DB
}

func NewPostgresLedger(db *gorm.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

func (l *PostgresLedger) Get(userId uint64) (model.UserStats, error) {
	var stats model.UserStats
	result := l.db.Where("user_id = ?", userId).First(&stats)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.UserStats{}, ErrNoStats
	}
	if result.Error != nil {
		return model.UserStats{}, result.Error
	}
	return stats, nil
}

func (l *PostgresLedger) Ensure(userId uint64) (model.UserStats, error) {
	var stats model.UserStats
	result := l.db.Raw(
		`INSERT INTO user_stats (user_id, captured_count, exchanged_count)
		      VALUES (?, 0, 0)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = user_stats.user_id
		   RETURNING *`, userId).
		Scan(&stats)
	if result.Error != nil {
		return model.UserStats{}, result.Error
	}
	return stats, nil
}

func (l *PostgresLedger) IncrementCaptured(userId uint64) (model.UserStats, error) {
	return l.increment(userId, "captured_count", 1, 0)
}

func (l *PostgresLedger) IncrementExchanged(userId uint64) (model.UserStats, error) {
	return l.increment(userId, "exchanged_count", 0, 1)
}

func (l *PostgresLedger) increment(userId uint64, column string, captured, exchanged uint64) (model.UserStats, error) {
	var stats model.UserStats
	result := l.db.Raw(
		`INSERT INTO user_stats (user_id, captured_count, exchanged_count)
		      VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE
		         SET `+column+` = user_stats.`+column+` + 1
		   RETURNING *`, userId, captured, exchanged).
		Scan(&stats)
	if result.Error != nil {
		return model.UserStats{}, result.Error
	}
	return stats, nil
}

func (l *PostgresLedger) ListAll() ([]model.UserStats, error) {
	var all []model.UserStats
	result := l.db.Order("id").Find(&all)
	if result.Error != nil {
		return nil, result.Error
	}
	return all, nil
}

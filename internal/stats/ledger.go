// Package stats keeps the per-user capture/exchange counters and serves the
// leaderboard views built on them.
package stats

import (
	"errors"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
)

var ErrNoStats = errors.New("no stats recorded for user")

// Ledger counters are cumulative and monotonically non-decreasing; rows are
// created lazily and never deleted.
type Ledger interface {
	// Get returns ErrNoStats when the user has no row yet.
	Get(userId uint64) (model.UserStats, error)
	// Ensure returns the existing row or creates a zeroed one. Idempotent.
	Ensure(userId uint64) (model.UserStats, error)
	// IncrementCaptured adds one capture, creating the row at captured=1 if
	// absent. Concurrent increments must not lose updates.
	IncrementCaptured(userId uint64) (model.UserStats, error)
	// IncrementExchanged is the exchange counterpart of IncrementCaptured.
	IncrementExchanged(userId uint64) (model.UserStats, error)
	ListAll() ([]model.UserStats, error)
}

package custody

import (
	"time"

	"github.com/jpillora/backoff"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/keylock"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/reject"
	"github.com/nemesia-app/villaindex-backend/internal/stats"
	"github.com/rs/zerolog/log"
)

type ClaimType string

const (
	// ClaimCaptured: the character was unheld; the claimant is its first holder.
	ClaimCaptured ClaimType = "CAPTURED"
	// ClaimExchanged: custody moved from another holder to the claimant.
	ClaimExchanged ClaimType = "EXCHANGED"
	// ClaimRetained: the claimant already held the character; nothing changed.
	ClaimRetained ClaimType = "RETAINED"
)

type ClaimResult struct {
	Type    ClaimType
	Villain model.Villain
	// PreviousHolderId is set only for exchanges.
	PreviousHolderId uint64
}

// TransferEvent is what the custody feed publishes after a claim commits.
type TransferEvent struct {
	Type             ClaimType `json:"type"`
	CharacterId      string    `json:"characterId"`
	NewHolderId      uint64    `json:"newHolderId"`
	PreviousHolderId *uint64   `json:"previousHolderId"`
}

type eventPublisher interface {
	Publish(topic string, event any)
}

// CustodyFeedTopic is the hub topic transfer events go out on.
const CustodyFeedTopic = "custody"

type Service struct {
	registry Registry
	ledger   stats.Ledger
	locks    *keylock.KeyLock
	feed     eventPublisher
}

func NewService(registry Registry, ledger stats.Ledger, feed eventPublisher) *Service {
	return &Service{
		registry: registry,
		ledger:   ledger,
		locks:    keylock.New(),
		feed:     feed,
	}
}

// Claim decides capture vs. exchange for one character and applies it. The
// per-character lock makes the read-decide-write sequence atomic with respect
// to concurrent claims on the same character; claims on other characters run
// untouched.
func (s *Service) Claim(claimantId uint64, characterId string) (ClaimResult, *reject.ProblemWithTrace) {
	s.locks.Lock(characterId)
	defer s.locks.Unlock(characterId)

	current, err := s.registry.Find(characterId)
	if err != nil && err != ErrNotHeld {
		return ClaimResult{}, transferFailed(err)
	}

	if err == ErrNotHeld {
		created, createErr := s.registry.Create(characterId, claimantId)
		if createErr == ErrAlreadyHeld {
			// Another writer outside this process won the insert; the
			// per-character lock only covers claims routed through here.
			return ClaimResult{}, &reject.ProblemWithTrace{
				Problem: reject.ConflictProblem(),
				Cause:   createErr,
			}
		}
		if createErr != nil {
			return ClaimResult{}, transferFailed(createErr)
		}
		if creditErr := s.credit(s.ledger.IncrementCaptured, claimantId); creditErr != nil {
			return ClaimResult{}, transferFailed(creditErr)
		}

		result := ClaimResult{Type: ClaimCaptured, Villain: created}
		s.publish(result)
		return result, nil
	}

	if current.UserId == claimantId {
		// The claimant already holds the character. The counters measure
		// actions against others, so nothing moves here.
		return ClaimResult{Type: ClaimRetained, Villain: current}, nil
	}

	previousHolder := current.UserId
	updated, reassignErr := s.registry.Reassign(characterId, claimantId)
	if reassignErr != nil {
		return ClaimResult{}, transferFailed(reassignErr)
	}
	if creditErr := s.credit(s.ledger.IncrementExchanged, claimantId); creditErr != nil {
		return ClaimResult{}, transferFailed(creditErr)
	}

	result := ClaimResult{Type: ClaimExchanged, Villain: updated, PreviousHolderId: previousHolder}
	s.publish(result)
	return result, nil
}

func (s *Service) ListByHolder(userId uint64) ([]model.Villain, *reject.ProblemWithTrace) {
	held, err := s.registry.ListByHolder(userId)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return held, nil
}

// credit lands the stats half of a claim. The custody row is already written
// by the time this runs, so a transient ledger failure is retried before the
// claim is reported failed.
func (s *Service) credit(increment func(uint64) (model.UserStats, error), userId uint64) error {
	b := &backoff.Backoff{
		Min:    25 * time.Millisecond,
		Max:    500 * time.Millisecond,
		Factor: 2,
		Jitter: true,
	}

	var err error
	for attempt := 0; attempt < 4; attempt++ {
		if _, err = increment(userId); err == nil {
			return nil
		}
		log.Warn().Err(err).Uint64("user_id", userId).Msg("Stats credit failed, retrying")
		time.Sleep(b.Duration())
	}
	return err
}

func (s *Service) publish(result ClaimResult) {
	if s.feed == nil {
		return
	}

	event := TransferEvent{
		Type:        result.Type,
		CharacterId: result.Villain.CharacterId,
		NewHolderId: result.Villain.UserId,
	}
	if result.Type == ClaimExchanged {
		previous := result.PreviousHolderId
		event.PreviousHolderId = &previous
	}
	s.feed.Publish(CustodyFeedTopic, event)
}

func transferFailed(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.TransferFailedProblem(err),
		Cause:   err,
	}
}

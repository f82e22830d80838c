package stats

import (
	"sort"

	"github.com/nemesia-app/villaindex-backend/internal/identity"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/reject"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/utils"
)

// UserStatsView is the presentation shape of a ledger row: the stored record
// plus the directory fields callers want next to it. Nil username/email means
// the user no longer resolves.
type UserStatsView struct {
	model.UserStats
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type Service struct {
	ledger    Ledger
	directory identity.Directory
}

func NewService(ledger Ledger, directory identity.Directory) *Service {
	return &Service{ledger: ledger, directory: directory}
}

// StatsForEmail returns the user's row, or a zero-counter record when none
// exists yet.
func (s *Service) StatsForEmail(email string) (model.UserStats, *reject.ProblemWithTrace) {
	user, err := s.directory.FindByEmail(email)
	if err == identity.ErrUserNotFound {
		return model.UserStats{}, &reject.ProblemWithTrace{
			Problem: reject.NotFoundProblem(),
			Cause:   err,
		}
	}
	if err != nil {
		return model.UserStats{}, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	stats, err := s.ledger.Get(user.Id)
	if err == ErrNoStats {
		return model.UserStats{UserId: user.Id}, nil
	}
	if err != nil {
		return model.UserStats{}, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return stats, nil
}

func (s *Service) ListAll() ([]UserStatsView, *reject.ProblemWithTrace) {
	all, err := s.ledger.ListAll()
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return s.enrich(all), nil
}

// Leaderboard orders by captures, exchanges breaking ties, and pages through
// the result.
func (s *Service) Leaderboard(page utils.PageRequest) (*utils.PageResponse[UserStatsView], *reject.ProblemWithTrace) {
	all, err := s.ledger.ListAll()
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].CapturedCount != all[j].CapturedCount {
			return all[i].CapturedCount > all[j].CapturedCount
		}
		if all[i].ExchangedCount != all[j].ExchangedCount {
			return all[i].ExchangedCount > all[j].ExchangedCount
		}
		return all[i].UserId < all[j].UserId
	})

	total := int64(len(all))
	start := page.Offset
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}

	response := utils.NewPageResponse[UserStatsView]().
		WithItems(s.enrich(all[start:end])).
		WithItemCount(total)
	if end < len(all) {
		response = response.WithNextPageToken(int64(page.Token) + 1)
	}

	return response.Build(), nil
}

func (s *Service) IncrementCaptured(userId uint64) (model.UserStats, *reject.ProblemWithTrace) {
	return s.incrementWith(s.ledger.IncrementCaptured, userId)
}

func (s *Service) IncrementExchanged(userId uint64) (model.UserStats, *reject.ProblemWithTrace) {
	return s.incrementWith(s.ledger.IncrementExchanged, userId)
}

func (s *Service) incrementWith(increment func(uint64) (model.UserStats, error), userId uint64) (model.UserStats, *reject.ProblemWithTrace) {
	if _, err := s.directory.FindById(userId); err != nil {
		if err == identity.ErrUserNotFound {
			return model.UserStats{}, &reject.ProblemWithTrace{
				Problem: reject.NotFoundProblem(),
				Cause:   err,
			}
		}
		return model.UserStats{}, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	stats, err := increment(userId)
	if err != nil {
		return model.UserStats{}, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return stats, nil
}

func (s *Service) enrich(rows []model.UserStats) []UserStatsView {
	views := make([]UserStatsView, 0, len(rows))
	for _, row := range rows {
		view := UserStatsView{UserStats: row}
		if user, err := s.directory.FindById(row.UserId); err == nil {
			view.Username = &user.Username
			view.Email = &user.Email
		}
		views = append(views, view)
	}
	return views
}

package identity

import (
	"net/http"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/reject"
	"golang.org/x/crypto/bcrypt"
)

const (
	duplicateUser      = "error.identity.duplicate"
	invalidCredentials = "error.identity.invalid-credentials"

	// A well-formed hash of nothing anyone knows, compared against when the
	// email does not resolve.
	dummyCredential = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// statsEnsurer is the slice of the stats ledger signup needs: every new user
// starts with a zeroed stats row.
type statsEnsurer interface {
	Ensure(userId uint64) (model.UserStats, error)
}

type Service struct {
	directory Directory
	stats     statsEnsurer
}

func NewService(directory Directory, stats statsEnsurer) *Service {
	return &Service{directory: directory, stats: stats}
}

func (s *Service) Signup(username, email, password string) (model.User, *reject.ProblemWithTrace) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	user, err := s.directory.Create(model.User{
		Username:   username,
		Email:      email,
		Credential: string(hash),
	})
	if err == ErrDuplicateUser {
		return model.User{}, &reject.ProblemWithTrace{
			Problem: reject.NewProblem().
				WithTitle("Email or username already exists").
				WithStatus(http.StatusBadRequest).
				WithCode(duplicateUser).
				Build(),
			Cause: err,
		}
	}
	if err != nil {
		return model.User{}, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	if _, err := s.stats.Ensure(user.Id); err != nil {
		return model.User{}, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return user, nil
}

func (s *Service) Login(email, password string) (model.User, *reject.ProblemWithTrace) {
	invalid := &reject.ProblemWithTrace{
		Problem: reject.NewProblem().
			WithTitle("Invalid credentials").
			WithStatus(http.StatusUnauthorized).
			WithCode(invalidCredentials).
			Build(),
		Cause: ErrUserNotFound,
	}

	user, err := s.directory.FindByEmail(email)
	if err == ErrUserNotFound {
		// Burn a comparison anyway so unknown emails cost the same as bad
		// passwords.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyCredential), []byte(password))
		return model.User{}, invalid
	}
	if err != nil {
		return model.User{}, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Credential), []byte(password)) != nil {
		return model.User{}, invalid
	}

	return user, nil
}

package identity

import (
	"net/http"
	"testing"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"golang.org/x/crypto/bcrypt"
)

// ledgerStub satisfies statsEnsurer without pulling in the stats package,
// which itself depends on identity.
type ledgerStub struct {
	rows map[uint64]model.UserStats
}

func newLedgerStub() *ledgerStub {
	return &ledgerStub{rows: make(map[uint64]model.UserStats)}
}

func (l *ledgerStub) Ensure(userId uint64) (model.UserStats, error) {
	if row, ok := l.rows[userId]; ok {
		return row, nil
	}
	row := model.UserStats{Id: uint64(len(l.rows) + 1), UserId: userId}
	l.rows[userId] = row
	return row, nil
}

func newTestService() (*Service, *MemoryDirectory, *ledgerStub) {
	directory := NewMemoryDirectory()
	ledger := newLedgerStub()
	return NewService(directory, ledger), directory, ledger
}

func TestSignupHashesCredential(t *testing.T) {
	service, directory, ledger := newTestService()

	user, problem := service.Signup("alice", "alice@example.com", "hunter2")
	if problem != nil {
		t.Fatalf("signup failed: %v", problem.Cause)
	}
	if user.Id == 0 {
		t.Error("expected an assigned id")
	}

	stored, err := directory.FindByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Credential == "hunter2" {
		t.Fatal("credential stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Credential), []byte("hunter2")) != nil {
		t.Error("stored credential does not verify against the password")
	}

	// Signup seeds the stats row.
	row, ok := ledger.rows[user.Id]
	if !ok {
		t.Fatal("stats row not created")
	}
	if row.CapturedCount != 0 || row.ExchangedCount != 0 {
		t.Errorf("stats row not zeroed: %+v", row)
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	service, _, _ := newTestService()

	if _, problem := service.Signup("alice", "alice@example.com", "hunter2"); problem != nil {
		t.Fatalf("first signup failed: %v", problem.Cause)
	}

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"same email", "someone-else", "alice@example.com"},
		{"same username", "alice", "other@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, problem := service.Signup(tt.username, tt.email, "pw")
			if problem == nil {
				t.Fatal("expected duplicate rejection")
			}
			if problem.Problem.Status != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", problem.Problem.Status)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	service, _, _ := newTestService()

	created, problem := service.Signup("alice", "alice@example.com", "hunter2")
	if problem != nil {
		t.Fatalf("signup failed: %v", problem.Cause)
	}

	user, problem := service.Login("alice@example.com", "hunter2")
	if problem != nil {
		t.Fatalf("login failed: %v", problem.Cause)
	}
	if user.Id != created.Id {
		t.Errorf("logged in as wrong user: %d", user.Id)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "wrong"},
		{"unknown email", "ghost@example.com", "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, problem := service.Login(tt.email, tt.password)
			if problem == nil {
				t.Fatal("expected login rejection")
			}
			if problem.Problem.Status != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", problem.Problem.Status)
			}
		})
	}
}

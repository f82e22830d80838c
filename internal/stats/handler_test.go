package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nemesia-app/villaindex-backend/internal/identity"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/utils"
)

func setupStatsRouter(t *testing.T) (*gin.Engine, *identity.MemoryDirectory, *MemoryLedger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	directory := identity.NewMemoryDirectory()
	ledger := NewMemoryLedger()
	service := NewService(ledger, directory)

	router := gin.New()
	RegisterRoutes(router.Group(""), service)
	return router, directory, ledger
}

func seedUser(t *testing.T, directory *identity.MemoryDirectory, username, email string) model.User {
	t.Helper()
	user, err := directory.Create(model.User{Username: username, Email: email})
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func TestStatsForUserEndpoint(t *testing.T) {
	router, directory, ledger := setupStatsRouter(t)
	user := seedUser(t, directory, "alice", "alice@example.com")

	// No row yet: a zeroed default, not an error.
	req := httptest.NewRequest("GET", "/user-stats/"+user.Email, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var row model.UserStats
	if err := json.Unmarshal(recorder.Body.Bytes(), &row); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if row.UserId != user.Id || row.CapturedCount != 0 || row.ExchangedCount != 0 {
		t.Errorf("expected zeroed default, got %+v", row)
	}

	ledger.IncrementCaptured(user.Id)
	ledger.IncrementExchanged(user.Id)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/user-stats/"+user.Email, nil))
	json.Unmarshal(recorder.Body.Bytes(), &row)
	if row.CapturedCount != 1 || row.ExchangedCount != 1 {
		t.Errorf("expected captured=1 exchanged=1, got %+v", row)
	}

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/user-stats/ghost@example.com", nil))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}

func TestListStatsEnrichment(t *testing.T) {
	router, directory, ledger := setupStatsRouter(t)
	user := seedUser(t, directory, "alice", "alice@example.com")

	ledger.IncrementCaptured(user.Id)
	// A row whose user no longer resolves.
	ledger.IncrementExchanged(999)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/user-stats", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var views []UserStatsView
	if err := json.Unmarshal(recorder.Body.Bytes(), &views); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(views))
	}

	if views[0].Username == nil || *views[0].Username != "alice" ||
		views[0].Email == nil || *views[0].Email != "alice@example.com" {
		t.Errorf("alice not enriched: %+v", views[0])
	}
	if views[1].Username != nil || views[1].Email != nil {
		t.Errorf("orphan row must enrich to null: %+v", views[1])
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	router, directory, ledger := setupStatsRouter(t)

	for i := 0; i < 5; i++ {
		user := seedUser(t, directory,
			fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@example.com", i))
		for c := 0; c <= i; c++ {
			ledger.IncrementCaptured(user.Id)
		}
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/leaderboard?page_size=2&page_token=0", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var page utils.PageResponse[UserStatsView]
	if err := json.Unmarshal(recorder.Body.Bytes(), &page); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if page.ItemCount != 5 {
		t.Errorf("expected 5 total, got %d", page.ItemCount)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].CapturedCount != 5 || page.Items[1].CapturedCount != 4 {
		t.Errorf("leaderboard not ordered: %+v", page.Items)
	}
	if page.NextPageToken != 1 {
		t.Errorf("expected next page token 1, got %d", page.NextPageToken)
	}

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/leaderboard?page_size=2&page_token=2", nil))
	// A fresh value: the last page omits nextPageToken entirely, so decoding
	// into the previous page's struct would keep its stale token.
	var lastPage utils.PageResponse[UserStatsView]
	if err := json.Unmarshal(recorder.Body.Bytes(), &lastPage); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(lastPage.Items) != 1 || lastPage.NextPageToken != 0 {
		t.Errorf("last page wrong: %+v", lastPage)
	}

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/leaderboard?page_size=nope", nil))
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad page size, got %d", recorder.Code)
	}
}

func TestDirectIncrementEndpoints(t *testing.T) {
	router, directory, _ := setupStatsRouter(t)
	user := seedUser(t, directory, "alice", "alice@example.com")

	post := func(path string, body any) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(body)
		req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder
	}

	recorder := post("/user-stats/increment-captured", IncrementRequest{UserId: user.Id})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var row model.UserStats
	json.Unmarshal(recorder.Body.Bytes(), &row)
	if row.CapturedCount != 1 {
		t.Errorf("expected captured=1, got %+v", row)
	}

	recorder = post("/user-stats/increment-exchanged", IncrementRequest{UserId: user.Id})
	json.Unmarshal(recorder.Body.Bytes(), &row)
	if row.ExchangedCount != 1 {
		t.Errorf("expected exchanged=1, got %+v", row)
	}

	recorder = post("/user-stats/increment-captured", IncrementRequest{UserId: 999})
	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown user, got %d", recorder.Code)
	}

	recorder = post("/user-stats/increment-captured", map[string]any{})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing userId, got %d", recorder.Code)
	}
}

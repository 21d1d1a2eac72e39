package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ghuser/contracthub/pkg/auth"
	appsvcs "github.com/ghuser/contracthub/services/contract/application/services"
	contractdomain "github.com/ghuser/contracthub/services/contract/domain"
	"github.com/ghuser/contracthub/services/contract/domain/models"
	"github.com/ghuser/contracthub/services/contract/domain/repositories"
)

// fakeContractRepo keeps contracts in memory and records the changes that
// would be published as ContractChangedEvents.
type fakeContractRepo struct {
	mu        sync.Mutex
	nextID    int64
	contracts map[int64]models.Contract
	changes   []models.Change
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{contracts: map[int64]models.Contract{}}
}

func (f *fakeContractRepo) Save(_ context.Context, c *models.Contract) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.contracts {
		if existing.Number == c.Number {
			return contractdomain.ErrContractAlreadyExists
		}
	}
	f.nextID++
	c.ID = f.nextID
	f.contracts[c.ID] = *c
	return nil
}

func (f *fakeContractRepo) GetByID(_ context.Context, id int64) (*models.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contracts[id]
	if !ok {
		return nil, contractdomain.ErrContractNotFound
	}
	return &c, nil
}

func (f *fakeContractRepo) Update(_ context.Context, id int64, mutate repositories.Mutation) (*models.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contracts[id]
	if !ok {
		return nil, contractdomain.ErrContractNotFound
	}
	change, err := mutate(&c)
	if err != nil {
		return nil, err
	}
	if change != nil {
		f.contracts[id] = c
		f.changes = append(f.changes, *change)
	}
	return &c, nil
}

func newTestRouter(repo *fakeContractRepo, actor *auth.Actor) http.Handler {
	svcs := &appsvcs.Services{Contract: appsvcs.NewContractService(repo)}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if actor != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), *actor)))
			})
		})
	}
	r.Post("/contracts", NewPostContractHandler(svcs).Execute)
	r.Get("/contracts/{id}", NewGetContractHandler(svcs).Execute)
	r.Put("/contracts/{id}", NewPutContractHandler(svcs).Execute)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, r)
	return w
}

func createBody(number string) string {
	finished := time.Now().AddDate(1, 0, 0).UTC().Format(time.RFC3339)
	return `{"contract_number":"` + number + `","email":"an@example.com","full_name":"An Nguyen","finished_at":"` + finished + `"}`
}

func TestPostContract(t *testing.T) {
	h := newTestRouter(newFakeContractRepo(), nil)

	w := do(h, http.MethodPost, "/contracts", createBody("hd-new"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp ContractResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.ContractNumber != "HD-NEW" || resp.Status != "Active" || resp.ID == 0 {
		t.Errorf("unexpected response: %+v", resp)
	}

	if w := do(h, http.MethodPost, "/contracts", createBody("HD-NEW")); w.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", w.Code)
	}
}

func TestGetContract(t *testing.T) {
	h := newTestRouter(newFakeContractRepo(), nil)
	do(h, http.MethodPost, "/contracts", createBody("HD-1"))

	tests := []struct {
		path string
		want int
	}{
		{"/contracts/1", http.StatusOK},
		{"/contracts/99", http.StatusNotFound},
		{"/contracts/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if w := do(h, http.MethodGet, tt.path, ""); w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestPutContract_RecordsActorAndRequestID(t *testing.T) {
	repo := newFakeContractRepo()
	actor := auth.Actor{AccountID: uuid.New(), Email: "ops@example.com"}
	h := newTestRouter(repo, &actor)
	do(h, http.MethodPost, "/contracts", createBody("HD-1"))

	finished := time.Now().AddDate(2, 0, 0).UTC().Format(time.RFC3339)
	body := `{"email":"an@example.com","full_name":"An Tran","finished_at":"` + finished + `","status":"Active"}`
	w := do(h, http.MethodPut, "/contracts/1", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(repo.changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(repo.changes))
	}
	change := repo.changes[0]
	if change.ChangedBy != "ops@example.com" {
		t.Errorf("changed_by: got %q", change.ChangedBy)
	}
	if change.CorrelationID == "" {
		t.Error("expected the request id as correlation id")
	}
	if change.Old.FullName != "An Nguyen" || change.New.FullName != "An Tran" {
		t.Errorf("snapshots: %+v", change)
	}

	// Same payload again changes nothing and records nothing.
	if w := do(h, http.MethodPut, "/contracts/1", body); w.Code != http.StatusOK {
		t.Fatalf("repeat: expected 200, got %d", w.Code)
	}
	if len(repo.changes) != 1 {
		t.Fatalf("no-op update recorded a change: %d", len(repo.changes))
	}
}

func TestPutContract_Errors(t *testing.T) {
	finished := time.Now().AddDate(2, 0, 0).UTC().Format(time.RFC3339)
	valid := `{"email":"an@example.com","full_name":"An Tran","finished_at":"` + finished + `","status":"Active"}`

	t.Run("no actor", func(t *testing.T) {
		h := newTestRouter(newFakeContractRepo(), nil)
		if w := do(h, http.MethodPut, "/contracts/1", valid); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	actor := auth.Actor{AccountID: uuid.New(), Email: "ops@example.com"}
	h := newTestRouter(newFakeContractRepo(), &actor)
	do(h, http.MethodPost, "/contracts", createBody("HD-1"))

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown contract", "/contracts/99", valid, http.StatusNotFound},
		{"unknown status", "/contracts/1", strings.Replace(valid, `"Active"`, `"Paused"`, 1), http.StatusUnprocessableEntity},
		{"finished in the past", "/contracts/1", strings.Replace(valid, finished, "2000-01-01T00:00:00Z", 1), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(h, http.MethodPut, tt.path, tt.body); w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

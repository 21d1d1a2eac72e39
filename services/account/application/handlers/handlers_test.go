package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/sessions"

	appsvcs "github.com/ghuser/contracthub/services/account/application/services"
	accountdomain "github.com/ghuser/contracthub/services/account/domain"
	"github.com/ghuser/contracthub/services/account/domain/models"
)

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[models.Email]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[models.Email]*models.Account{}}
}

func (f *fakeAccountRepo) Save(_ context.Context, acc *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[acc.Email]; ok {
		return accountdomain.ErrAccountAlreadyExists
	}
	f.accounts[acc.Email] = acc
	return nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email models.Email) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[email]
	if !ok {
		return nil, accountdomain.ErrAccountNotFound
	}
	return acc, nil
}

func newTestServices() *appsvcs.Services {
	return &appsvcs.Services{Account: appsvcs.NewAccountService(newFakeAccountRepo())}
}

func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

func post(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	h(w, r)
	return w
}

func TestPostAccount(t *testing.T) {
	svcs := newTestServices()
	h := NewPostAccountHandler(svcs, newTestStore()).Execute

	t.Run("created with session cookie", func(t *testing.T) {
		w := post(h, "/api/accounts", `{"email":"An@Example.com","full_name":"An Nguyen","password":"correct-horse"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp AccountResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.Email != "an@example.com" {
			t.Errorf("email not normalized: %q", resp.Email)
		}
		if len(w.Result().Cookies()) == 0 {
			t.Error("expected a session cookie")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := post(h, "/api/accounts", `{"email":"an@example.com","full_name":"An Again","password":"correct-horse"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		w := post(h, "/api/accounts", `{"email":"not-an-email","full_name":"An","password":"x"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		w := post(h, "/api/accounts", `{`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPostSession(t *testing.T) {
	svcs := newTestServices()
	store := newTestStore()
	register := NewPostAccountHandler(svcs, store).Execute
	signIn := NewPostSessionHandler(svcs, store).Execute

	if w := post(register, "/api/accounts", `{"email":"ops@example.com","full_name":"Ops","password":"correct-horse"}`); w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid credentials", `{"email":"OPS@example.com","password":"correct-horse"}`, http.StatusOK},
		{"wrong password", `{"email":"ops@example.com","password":"wrong-horse"}`, http.StatusUnauthorized},
		{"unknown account", `{"email":"nobody@example.com","password":"correct-horse"}`, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(signIn, "/api/sessions", tt.body)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

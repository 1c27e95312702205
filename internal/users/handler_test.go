package users_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedDR200/Library-API/internal/auth"
	"github.com/AhmedDR200/Library-API/internal/shared"
	"github.com/AhmedDR200/Library-API/internal/users"
)

type stubRepo struct {
	users map[int64]*users.User
}

func newStubRepo(seed ...users.User) *stubRepo {
	repo := &stubRepo{users: make(map[int64]*users.User)}
	for i := range seed {
		u := seed[i]
		repo.users[u.ID] = &u
	}
	return repo
}

func (s *stubRepo) List(ctx context.Context) ([]users.User, error) {
	var out []users.User
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*users.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubRepo) Update(ctx context.Context, id int64, username, email, passwordHash *string) (*users.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if email != nil {
		for otherID, other := range s.users {
			if otherID != id && other.Email == *email {
				return nil, shared.ErrDuplicateEmail
			}
		}
		u.Email = *email
	}
	if username != nil {
		u.Username = *username
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	u.UpdatedAt = time.Now()
	clone := *u
	return &clone, nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

var _ users.Repository = (*stubRepo)(nil)

type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func newUsersRouter(t *testing.T, repo users.Repository) (chi.Router, *auth.TokenService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour)
	guard := auth.NewMiddleware(tokens, logger)
	handler := users.NewHandler(logger, users.NewService(repo, plainHasher{}), guard)
	router := chi.NewRouter()
	handler.MountRoutes(router)
	return router, tokens
}

func request(t *testing.T, router http.Handler, tokens *auth.TokenService, method, path, body string, userID int64, isAdmin bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	signed, err := tokens.IssueSession(userID, isAdmin)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	req.Header.Set(auth.TokenHeader, signed)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func seedUsers() []users.User {
	return []users.User{
		{ID: 1, Username: "admin", Email: "admin@books.test", IsAdmin: true},
		{ID: 5, Username: "reader", Email: "reader@books.test"},
		{ID: 7, Username: "other", Email: "other@books.test"},
	}
}

func TestListUsersAdminOnly(t *testing.T) {
	router, tokens := newUsersRouter(t, newStubRepo(seedUsers()...))

	if res := request(t, router, tokens, http.MethodGet, "/users", "", 1, true); res.Code != http.StatusOK {
		t.Fatalf("admin list: expected 200, got %d", res.Code)
	}
	res := request(t, router, tokens, http.MethodGet, "/users", "", 5, false)
	if res.Code != http.StatusForbidden {
		t.Fatalf("regular user list: expected 403, got %d", res.Code)
	}
}

func TestListUsersHidesPasswordHash(t *testing.T) {
	repo := newStubRepo(users.User{ID: 5, Username: "reader", Email: "reader@books.test", PasswordHash: "$2a$10$secret"})
	router, tokens := newUsersRouter(t, repo)

	res := request(t, router, tokens, http.MethodGet, "/users", "", 1, true)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if strings.Contains(res.Body.String(), "secret") {
		t.Fatalf("password hash leaked in listing: %s", res.Body.String())
	}
}

func TestGetUserOwnerOrAdmin(t *testing.T) {
	router, tokens := newUsersRouter(t, newStubRepo(seedUsers()...))

	cases := []struct {
		name    string
		userID  int64
		isAdmin bool
		path    string
		want    int
	}{
		{"owner reads self", 5, false, "/users/5", http.StatusOK},
		{"owner blocked from other", 5, false, "/users/7", http.StatusForbidden},
		{"admin reads anyone", 1, true, "/users/7", http.StatusOK},
		{"unknown id", 1, true, "/users/99", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := request(t, router, tokens, http.MethodGet, tc.path, "", tc.userID, tc.isAdmin)
			if res.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, res.Code, res.Body.String())
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	repo := newStubRepo(seedUsers()...)
	router, tokens := newUsersRouter(t, repo)

	res := request(t, router, tokens, http.MethodPut, "/users/5",
		`{"username":"bookworm"}`, 5, false)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "bookworm") {
		t.Fatalf("expected updated username in response")
	}
	if repo.users[5].Username != "bookworm" {
		t.Fatalf("update not persisted")
	}
}

func TestUpdateUserHashesPassword(t *testing.T) {
	repo := newStubRepo(seedUsers()...)
	router, tokens := newUsersRouter(t, repo)

	res := request(t, router, tokens, http.MethodPut, "/users/5",
		`{"password":"newpass99"}`, 5, false)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if repo.users[5].PasswordHash != "hashed:newpass99" {
		t.Fatalf("password must pass through the hasher, got %q", repo.users[5].PasswordHash)
	}
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	router, tokens := newUsersRouter(t, newStubRepo(seedUsers()...))

	res := request(t, router, tokens, http.MethodPut, "/users/5",
		`{"email":"other@books.test"}`, 5, false)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "email already in use") {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}
}

func TestUpdateUserValidation(t *testing.T) {
	router, tokens := newUsersRouter(t, newStubRepo(seedUsers()...))

	res := request(t, router, tokens, http.MethodPut, "/users/5",
		`{"email":"not-an-email"}`, 5, false)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	repo := newStubRepo(seedUsers()...)
	router, tokens := newUsersRouter(t, repo)

	res := request(t, router, tokens, http.MethodDelete, "/users/5", "", 5, false)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "user deleted successfully") {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}
	if _, exists := repo.users[5]; exists {
		t.Fatalf("delete not persisted")
	}

	// Deleting again surfaces not found.
	res = request(t, router, tokens, http.MethodDelete, "/users/5", "", 1, true)
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AhmedDR200/Library-API/internal/auth"
	"github.com/AhmedDR200/Library-API/internal/shared"
)

type stubRepo struct {
	byEmail map[string]*auth.User
	byID    map[int64]*auth.User
	nextID  int64

	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byEmail: make(map[string]*auth.User),
		byID:    make(map[int64]*auth.User),
		nextID:  1,
	}
}

func (s *stubRepo) Create(ctx context.Context, user *auth.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.byEmail[user.Email]; exists {
		return shared.ErrDuplicateEmail
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	s.byEmail[user.Email] = &clone
	s.byID[user.ID] = &clone
	return nil
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *stubRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, ok := s.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

var _ auth.Repository = (*stubRepo)(nil)

type recordingMailer struct {
	to    []string
	links []string
	err   error
}

func (m *recordingMailer) EnqueueResetEmail(ctx context.Context, to, link string) error {
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, to)
	m.links = append(m.links, link)
	return nil
}

func newService(repo auth.Repository, mailer auth.ResetMailer) *auth.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := auth.NewHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour)
	return auth.NewService(repo, hasher, tokens, mailer, "http://localhost:5000", logger)
}

func TestRegisterIssuesToken(t *testing.T) {
	repo := newStubRepo()
	service := newService(repo, nil)

	user, token, err := service.Register(context.Background(), "reader", "reader@books.test", "sekret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if token == "" {
		t.Fatalf("expected session token")
	}
	if user.PasswordHash == "sekret123" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubRepo()
	service := newService(repo, nil)

	if _, _, err := service.Register(context.Background(), "reader", "reader@books.test", "sekret123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := service.Register(context.Background(), "other", "reader@books.test", "another1")
	if !errors.Is(err, shared.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newStubRepo()
	service := newService(repo, nil)
	if _, _, err := service.Register(context.Background(), "reader", "reader@books.test", "sekret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := service.Login(context.Background(), "reader@books.test", "sekret123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if user.Email != "reader@books.test" || token == "" {
			t.Fatalf("unexpected login result")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := service.Login(context.Background(), "reader@books.test", "wrongpass")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		// Must be indistinguishable from a wrong password.
		_, _, err := service.Login(context.Background(), "nobody@books.test", "sekret123")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestForgotPasswordKnownEmail(t *testing.T) {
	repo := newStubRepo()
	mailer := &recordingMailer{}
	service := newService(repo, mailer)
	user, _, err := service.Register(context.Background(), "reader", "reader@books.test", "sekret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	link, err := service.ForgotPassword(context.Background(), "reader@books.test")
	if err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if link == "" {
		t.Fatalf("expected reset link")
	}
	if !strings.Contains(link, "/reset-password/") {
		t.Fatalf("unexpected link shape: %q", link)
	}
	if len(mailer.to) != 1 || mailer.to[0] != user.Email {
		t.Fatalf("expected one queued email to %q, got %v", user.Email, mailer.to)
	}
	if mailer.links[0] != link {
		t.Fatalf("queued link must match the returned link")
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	repo := newStubRepo()
	mailer := &recordingMailer{}
	service := newService(repo, mailer)

	link, err := service.ForgotPassword(context.Background(), "nobody@books.test")
	if err != nil {
		t.Fatalf("forgot password must not error for unknown email: %v", err)
	}
	if link != "" {
		t.Fatalf("unknown email must not produce a link")
	}
	if len(mailer.to) != 0 {
		t.Fatalf("no email may be queued for unknown address")
	}
}

func TestForgotPasswordMailerFailureIsNonFatal(t *testing.T) {
	repo := newStubRepo()
	mailer := &recordingMailer{err: errors.New("queue down")}
	service := newService(repo, mailer)
	if _, _, err := service.Register(context.Background(), "reader", "reader@books.test", "sekret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	link, err := service.ForgotPassword(context.Background(), "reader@books.test")
	if err != nil {
		t.Fatalf("delivery failure must not fail the request: %v", err)
	}
	if link == "" {
		t.Fatalf("expected reset link despite delivery failure")
	}
}

func TestResetPassword(t *testing.T) {
	repo := newStubRepo()
	mailer := &recordingMailer{}
	service := newService(repo, mailer)
	user, _, err := service.Register(context.Background(), "reader", "reader@books.test", "sekret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	link, err := service.ForgotPassword(context.Background(), "reader@books.test")
	if err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	token := link[strings.LastIndex(link, "/")+1:]

	validated, err := service.ValidateReset(context.Background(), user.ID, token)
	if err != nil {
		t.Fatalf("validate reset: %v", err)
	}
	if validated.Email != user.Email {
		t.Fatalf("unexpected user from validation: %q", validated.Email)
	}

	if err := service.ResetPassword(context.Background(), user.ID, token, "newpass99"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, _, err := service.Login(context.Background(), "reader@books.test", "newpass99"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := service.Login(context.Background(), "reader@books.test", "sekret123"); !errors.Is(err, shared.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}

	// The token was signed over the old hash; replay must fail.
	if err := service.ResetPassword(context.Background(), user.ID, token, "thirdpass"); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on replay, got %v", err)
	}
}

func TestResetPasswordUnknownUser(t *testing.T) {
	repo := newStubRepo()
	service := newService(repo, nil)

	err := service.ResetPassword(context.Background(), 99, "whatever", "newpass99")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

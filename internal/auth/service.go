package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AhmedDR200/Library-API/internal/shared"
)

// ResetMailer delivers password-reset links out of band.
type ResetMailer interface {
	EnqueueResetEmail(ctx context.Context, to, link string) error
}

// Service orchestrates registration, login and password-reset flows.
type Service struct {
	repo     Repository
	hasher   *Hasher
	tokens   *TokenService
	mailer   ResetMailer
	linkBase string
	logger   *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher *Hasher, tokens *TokenService, mailer ResetMailer, linkBase string, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		linkBase: strings.TrimRight(linkBase, "/"),
		logger:   logger,
	}
}

// Register creates exactly one user record and issues one session token.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}
	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := s.tokens.IssueSession(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login validates credentials and issues a session token. A missing user
// and a wrong password both surface as ErrInvalidCredentials so callers
// cannot probe which emails are registered.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, "", shared.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", shared.ErrInvalidCredentials
	}
	token, err := s.tokens.IssueSession(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ForgotPassword issues a reset link for the given email and queues its
// delivery. An unknown email returns an empty link and no error, so the
// endpoint's response shape does not reveal account existence.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	token, err := s.tokens.IssueReset(user.ID, user.Email, user.PasswordHash)
	if err != nil {
		return "", err
	}
	link := fmt.Sprintf("%s/reset-password/%d/%s", s.linkBase, user.ID, token)
	if s.mailer != nil {
		if err := s.mailer.EnqueueResetEmail(ctx, user.Email, link); err != nil {
			s.logger.Warn("enqueue reset email", slog.Any("error", err))
		}
	}
	return link, nil
}

// ValidateReset resolves the user and checks the reset token against the
// user's current password hash.
func (s *Service) ValidateReset(ctx context.Context, userID int64, token string) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.tokens.VerifyReset(token, user.PasswordHash); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword applies a verified reset. Overwriting the stored hash is
// what invalidates every outstanding reset token for this user.
func (s *Service) ResetPassword(ctx context.Context, userID int64, token, newPassword string) error {
	user, err := s.ValidateReset(ctx, userID, token)
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, user.ID, hash)
}

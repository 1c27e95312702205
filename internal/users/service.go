package users

import (
	"context"
)

// PasswordHasher hashes plaintext passwords before they are persisted.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// Service handles user management business logic.
type Service struct {
	repo   Repository
	hasher PasswordHasher
}

// NewService builds a Service instance.
func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get returns a single user by id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. A new password is hashed before it is
// stored; plaintext never reaches the repository.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	var passwordHash *string
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}
	return s.repo.Update(ctx, id, req.Username, req.Email, passwordHash)
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

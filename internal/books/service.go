package books

import (
	"context"
	"log/slog"
)

// Service handles book business logic and listing cache maintenance.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// List returns books matching the filter, serving from cache when warm.
// Cache failures fall through to the repository.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Book, error) {
	if cached, ok := s.cache.Fetch(ctx, filter); ok {
		return cached, nil
	}
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Store(ctx, filter, list); err != nil {
		s.logger.Warn("cache book listing", slog.Any("error", err))
	}
	return list, nil
}

// Get returns a single book by id.
func (s *Service) Get(ctx context.Context, id int64) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a new book and invalidates cached listings.
func (s *Service) Create(ctx context.Context, req CreateBookRequest) (*Book, error) {
	book, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return book, nil
}

// Update applies a partial update and invalidates cached listings.
func (s *Service) Update(ctx context.Context, id int64, req UpdateBookRequest) (*Book, error) {
	book, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return book, nil
}

// Delete removes a book and invalidates cached listings.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidate book cache", slog.Any("error", err))
	}
}

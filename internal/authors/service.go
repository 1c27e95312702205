package authors

import (
	"context"

	"github.com/AhmedDR200/Library-API/internal/shared"
)

// Service handles author business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of authors with pagination metadata.
func (s *Service) List(ctx context.Context, page, perPage int) ([]Author, shared.Pagination, error) {
	meta := shared.NewPagination(page, perPage, 0)
	list, total, err := s.repo.List(ctx, meta.PerPage, meta.Offset())
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return list, shared.NewPagination(meta.Page, meta.PerPage, total), nil
}

// Get returns a single author by id.
func (s *Service) Get(ctx context.Context, id int64) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a new author, applying the default avatar when no image
// is supplied.
func (s *Service) Create(ctx context.Context, req CreateAuthorRequest) (*Author, error) {
	image := req.Image
	if image == "" {
		image = DefaultImage
	}
	author := &Author{
		Name:        req.Name,
		Age:         req.Age,
		Nationality: req.Nationality,
		Image:       image,
	}
	if err := s.repo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, req UpdateAuthorRequest) (*Author, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes an author.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

package content

import (
	"context"
	"fmt"
	"time"

	"github.com/visapath-api/internal/domain"
	"github.com/visapath-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateContentRequest, createdBy string) (*domain.Content, error)
	Get(ctx context.Context, contentID string) (*domain.Content, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Content, error)
	// List returns all documents when includeDrafts is set (admin view),
	// published documents only otherwise.
	List(ctx context.Context, includeDrafts bool) ([]domain.Content, error)
	Update(ctx context.Context, contentID string, req domain.UpdateContentRequest) (*domain.Content, error)
	Delete(ctx context.Context, contentID string) error
}

type contentStore interface {
	Put(ctx context.Context, c *domain.Content) error
	Get(ctx context.Context, contentID string) (*domain.Content, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Content, error)
	Scan(ctx context.Context) ([]domain.Content, error)
	Update(ctx context.Context, contentID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, contentID string) error
}

type service struct {
	repo contentStore
}

func NewService(repo contentStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateContentRequest, createdBy string) (*domain.Content, error) {
	if _, err := s.repo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, fmt.Errorf("slug already in use: %w", domain.ErrConflict)
	}
	now := time.Now().UTC()
	c := &domain.Content{
		ContentID: id.New(),
		Slug:      req.Slug,
		Title:     req.Title,
		Body:      req.Body,
		Section:   req.Section,
		Published: req.Published,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, contentID string) (*domain.Content, error) {
	return s.repo.Get(ctx, contentID)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*domain.Content, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) List(ctx context.Context, includeDrafts bool) ([]domain.Content, error) {
	all, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if includeDrafts {
		return all, nil
	}
	published := make([]domain.Content, 0, len(all))
	for _, c := range all {
		if c.Published {
			published = append(published, c)
		}
	}
	return published, nil
}

func (s *service) Update(ctx context.Context, contentID string, req domain.UpdateContentRequest) (*domain.Content, error) {
	updates := map[string]interface{}{}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.Section != nil {
		updates["section"] = *req.Section
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, contentID)
	}
	if err := s.repo.Update(ctx, contentID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, contentID)
}

func (s *service) Delete(ctx context.Context, contentID string) error {
	return s.repo.HardDelete(ctx, contentID)
}

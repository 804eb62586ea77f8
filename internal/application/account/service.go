package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/visapath-api/internal/domain"
)

type Service interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.Account, string, error)
	Update(ctx context.Context, accountID string, req domain.UpdateAccountRequest) (*domain.Account, error)
	Disable(ctx context.Context, accountID string) error
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Account, string, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, accountID string) error
}

type sessionStore interface {
	SoftDeleteByAccount(ctx context.Context, accountID string) error
}

type service struct {
	repo     accountStore
	sessions sessionStore
}

func NewService(repo accountStore, sessions sessionStore) Service {
	return &service{repo: repo, sessions: sessions}
}

func (s *service) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.Get(ctx, accountID)
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Account, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Update(ctx context.Context, accountID string, req domain.UpdateAccountRequest) (*domain.Account, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil {
		switch *req.Role {
		case domain.RoleAdmin, domain.RoleUser, domain.RoleAgency:
			updates["role"] = *req.Role
		default:
			return nil, fmt.Errorf("invalid role: %w", domain.ErrBadRequest)
		}
	}
	if req.Enable != nil {
		updates["enable"] = *req.Enable
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, accountID)
	}
	if err := s.repo.Update(ctx, accountID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, accountID)
}

// Disable soft-deletes the account and revokes all of its sessions.
func (s *service) Disable(ctx context.Context, accountID string) error {
	if err := s.repo.SoftDelete(ctx, accountID); err != nil {
		return err
	}
	if err := s.sessions.SoftDeleteByAccount(ctx, accountID); err != nil {
		slog.Warn("failed to revoke sessions for disabled account", "account_id", accountID, "err", err)
	}
	return nil
}

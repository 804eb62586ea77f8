package inquiry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/visapath-api/internal/domain"
	"github.com/visapath-api/internal/pkg/id"
	"github.com/visapath-api/internal/pkg/validate"
)

type Service interface {
	// Submit stores a visa-inquiry lead and alerts the sales phone by SMS
	// fire-and-forget.
	Submit(ctx context.Context, req domain.CreateInquiryRequest) (*domain.Inquiry, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.Inquiry, string, error)
	SetStatus(ctx context.Context, inquiryID, status string) error
}

type inquiryStore interface {
	Put(ctx context.Context, i *domain.Inquiry) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Inquiry, string, error)
	Update(ctx context.Context, inquiryID string, updates map[string]interface{}) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	repo       inquiryStore
	sms        smsSender
	salesPhone string
}

// NewService builds the inquiry service. sms and salesPhone may be empty;
// alerts are then skipped.
func NewService(repo inquiryStore, sms smsSender, salesPhone string) Service {
	return &service{repo: repo, sms: sms, salesPhone: salesPhone}
}

func (s *service) Submit(ctx context.Context, req domain.CreateInquiryRequest) (*domain.Inquiry, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	i := &domain.Inquiry{
		InquiryID: id.New(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		VisaType:  req.VisaType,
		Message:   req.Message,
		Status:    domain.InquiryStatusNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, i); err != nil {
		return nil, err
	}
	if s.sms != nil && s.salesPhone != "" {
		msg := fmt.Sprintf("New visa inquiry from %s (%s)", i.FullName, i.Email)
		if err := s.sms.SendSMS(ctx, s.salesPhone, msg); err != nil {
			slog.Warn("failed to send inquiry alert SMS", "inquiry_id", i.InquiryID, "err", err)
		}
	}
	return i, nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Inquiry, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) SetStatus(ctx context.Context, inquiryID, status string) error {
	switch status {
	case domain.InquiryStatusNew, domain.InquiryStatusContacted, domain.InquiryStatusClosed:
	default:
		return fmt.Errorf("invalid status: %w", domain.ErrBadRequest)
	}
	return s.repo.Update(ctx, inquiryID, map[string]interface{}{"status": status})
}

package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ComplaintService validates requests before delegating to the store
type ComplaintService struct {
	store domain.ComplaintStore
}

func NewComplaintService(store domain.ComplaintStore) domain.ComplaintService {
	return &ComplaintService{store: store}
}

func (s *ComplaintService) Create(ctx context.Context, req *domain.ComplaintRequest) (string, error) {
	if err := validateComplaintRequest(req); err != nil {
		return "", err
	}
	return s.store.Create(ctx, req)
}

func (s *ComplaintService) Get(ctx context.Context, id string) (*domain.Complaint, error) {
	return s.store.Get(ctx, strings.ToUpper(strings.TrimSpace(id)))
}

func (s *ComplaintService) GetAll(ctx context.Context) ([]domain.Complaint, error) {
	return s.store.GetAll(ctx)
}

func validateComplaintRequest(req *domain.ComplaintRequest) error {
	fields := map[string]string{}

	if len(strings.TrimSpace(req.Name)) < 2 {
		fields["name"] = "name must be at least 2 characters"
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		fields["phone_number"] = "phone number must be exactly 10 digits"
	}
	if !emailPattern.MatchString(req.Email) {
		fields["email"] = "email address is not valid"
	}
	if len(strings.TrimSpace(req.ComplaintDetails)) < 10 {
		fields["complaint_details"] = "complaint details must be at least 10 characters"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

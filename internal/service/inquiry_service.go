package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/mailer"
	"github.com/rivieracrest/villa-bookings/internal/repo/postgres"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

// InquiryService owns the lead pipeline: validating a public submission,
// persisting it, notifying both sides by email, and later converting the
// lead into a CRM customer.
type InquiryService interface {
	Create(ctx context.Context, req *domain.InquiryCreateReq) (*domain.Inquiry, error)
	ConvertToCustomer(ctx context.Context, inquiryID int64) (*domain.Customer, error)
}

type inquiryService struct {
	inquiryRepo  postgres.InquiryRepo
	propertyRepo postgres.PropertyRepo
	customerRepo postgres.CustomerRepo
	mailer       mailer.Service
}

func NewInquiryService(
	inquiryRepo postgres.InquiryRepo,
	propertyRepo postgres.PropertyRepo,
	customerRepo postgres.CustomerRepo,
	mailer mailer.Service,
) InquiryService {
	return &inquiryService{
		inquiryRepo:  inquiryRepo,
		propertyRepo: propertyRepo,
		customerRepo: customerRepo,
		mailer:       mailer,
	}
}

func (s *inquiryService) Create(ctx context.Context, req *domain.InquiryCreateReq) (*domain.Inquiry, error) {
	req.Normalize()
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	// The slug is advisory: an unknown or delisted property still produces
	// a lead, just without the property context in the emails.
	var prop *domain.Property
	if req.PropertySlug != "" {
		found, err := s.propertyRepo.GetBySlug(ctx, req.PropertySlug)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to look up property for inquiry", "error", err, "slug", req.PropertySlug)
		}
		prop = found
	}

	inq := &domain.Inquiry{
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		SourceURL: req.SourceURL,
		Locale:    domain.ParseLocale(req.Locale),
	}
	if prop != nil {
		inq.PropertyID = &prop.ID
	}

	created, err := s.inquiryRepo.Create(ctx, inq)
	if err != nil {
		return nil, fmt.Errorf("failed to store inquiry: %w", err)
	}

	// The submitter already has their answer; email delivery runs in the
	// background and failures are only logged.
	go s.notify(created, prop)

	return created, nil
}

func (s *inquiryService) notify(inq *domain.Inquiry, prop *domain.Property) {
	if err := s.mailer.SendInquiryAlert(inq, prop); err != nil {
		logger.Error("Failed to send inquiry alert email", "error", err, "inquiry_id", inq.ID)
	}
	if err := s.mailer.SendInquiryConfirmation(inq, prop); err != nil {
		logger.Error("Failed to send inquiry confirmation email", "error", err, "inquiry_id", inq.ID, "email", inq.Email)
	}
}

// ConvertToCustomer copies an inquiry's contact details into a CRM record
// and marks the inquiry booked. Repeated conversions create duplicate
// customers; operators merge those by hand.
func (s *inquiryService) ConvertToCustomer(ctx context.Context, inquiryID int64) (*domain.Customer, error) {
	inq, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inquiry: %w", err)
	}
	if inq == nil {
		return nil, nil
	}

	upsert := &domain.CustomerUpsert{
		Name:   inq.FullName,
		Email:  inq.Email,
		Phone:  inq.Phone,
		Notes:  conversionNote(inq),
		Source: "inquiry",
		Status: domain.CustomerActive,
	}
	upsert.Normalize()

	customer, err := s.customerRepo.Create(ctx, upsert)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	if _, err := s.inquiryRepo.UpdateStatus(ctx, inq.ID, domain.InquiryBooked); err != nil {
		logger.ErrorContext(ctx, "Failed to mark converted inquiry as booked", "error", err, "inquiry_id", inq.ID)
	}

	return customer, nil
}

func conversionNote(inq *domain.Inquiry) string {
	note := fmt.Sprintf("Converted from inquiry #%d (%s).", inq.ID, inq.CreatedAt.Format(time.DateOnly))
	if inq.CheckIn != nil && inq.CheckOut != nil {
		note += fmt.Sprintf(" Requested %s to %s.", inq.CheckIn, inq.CheckOut)
	}
	if inq.Message != "" {
		note += "\n\n" + inq.Message
	}
	return note
}

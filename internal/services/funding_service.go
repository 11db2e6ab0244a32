package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bloodaid/backend/internal/dto"
	"github.com/bloodaid/backend/internal/models"
	"github.com/bloodaid/backend/internal/scope"
)

var ErrInvalidAmount = errors.New("donation amount must be a positive number")

// CheckoutSessionCreator is the slice of the payment processor the funding
// service needs: open a session, get back a redirect URL.
type CheckoutSessionCreator interface {
	CreateCheckoutSession(amountMinor int64, donorEmail, donorName string) (string, error)
}

// FundingService records completed donations and initiates checkout
// sessions. Funding records are immutable and never deleted.
type FundingService struct {
	db       *gorm.DB
	checkout CheckoutSessionCreator
}

func NewFundingService(db *gorm.DB, checkout CheckoutSessionCreator) *FundingService {
	return &FundingService{db: db, checkout: checkout}
}

// InitiateCheckout validates the amount, converts it to integer minor
// currency units (avoiding float error on the wire) and opens a hosted
// session. Validation happens before the processor is touched.
func (s *FundingService) InitiateCheckout(req *dto.CheckoutRequest) (string, error) {
	amountMinor := int64(math.Round(req.DonateAmount * 100))
	if amountMinor < 1 {
		return "", ErrInvalidAmount
	}

	name := req.Name
	if name == "" {
		name = "Anonymous"
	}

	url, err := s.checkout.CreateCheckoutSession(amountMinor, req.Email, name)
	if err != nil {
		return "", fmt.Errorf("checkout initiation failed: %w", err)
	}
	return url, nil
}

// RecordFunding persists a completed donation. The donor email is always the
// verified caller's; any email in the body is ignored.
func (s *FundingService) RecordFunding(principalEmail string, req *dto.RecordFundingRequest) (*models.Funding, error) {
	funding := models.Funding{
		ID:         uuid.New(),
		DonorName:  req.Name,
		DonorEmail: principalEmail,
		Amount:     req.Amount,
	}

	if req.SessionID != "" {
		if b, err := json.Marshal(map[string]string{"session_id": req.SessionID}); err == nil {
			funding.Meta = datatypes.JSON(b)
		}
	}

	if err := s.db.Create(&funding).Error; err != nil {
		return nil, fmt.Errorf("failed to record funding: %w", err)
	}
	return &funding, nil
}

// ListByDonor returns a donor's funding records, newest first.
func (s *FundingService) ListByDonor(email string) ([]models.Funding, error) {
	var fundings []models.Funding
	err := s.db.Scopes(scope.ByDonor(email), scope.Newest()).Find(&fundings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list funding records: %w", err)
	}
	return fundings, nil
}

package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bloodaid/backend/internal/config"
	"github.com/bloodaid/backend/internal/dto"
	"github.com/bloodaid/backend/internal/models"
	"github.com/bloodaid/backend/internal/scope"
)

var (
	ErrRequestNotFound  = errors.New("donation request not found")
	ErrRequestForbidden = errors.New("donation request belongs to another requester")
)

// RequestService is the donation request ledger.
//
// Two contracts here are deliberately permissive: status updates accept any
// value (no transition validation), and mutation is open to any
// authenticated caller unless ownership enforcement is switched on in
// config. Both match the observed client behavior; the ownership switch is
// the single decision point for tightening the latter.
type RequestService struct {
	db               *gorm.DB
	enforceOwnership bool
}

func NewRequestService(db *gorm.DB, cfg *config.Config) *RequestService {
	return &RequestService{db: db, enforceOwnership: cfg.EnforceRequestOwnership}
}

// Create inserts a new request. Status is forced to pending regardless of
// caller input; every other field is taken verbatim.
func (s *RequestService) Create(req *dto.CreateDonationRequest) (*models.DonationRequest, error) {
	request := models.DonationRequest{
		ID:             uuid.New(),
		RequesterEmail: req.RequesterEmail,
		RequesterName:  req.RequesterName,
		RecipientName:  req.RecipientName,
		BloodGroup:     req.BloodGroup,
		District:       req.District,
		Upazila:        req.Upazila,
		Address:        req.Address,
		HospitalName:   req.HospitalName,
		DonationDate:   req.DonationDate,
		DonationTime:   req.DonationTime,
		Message:        req.Message,
		Status:         models.RequestPending,
	}

	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create donation request: %w", err)
	}
	return &request, nil
}

func (s *RequestService) ListAll() ([]models.DonationRequest, error) {
	var requests []models.DonationRequest
	if err := s.db.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list donation requests: %w", err)
	}
	return requests, nil
}

func (s *RequestService) ListByRequester(email string) ([]models.DonationRequest, error) {
	var requests []models.DonationRequest
	err := s.db.Scopes(scope.ByRequester(email), scope.Newest()).Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list donation requests: %w", err)
	}
	return requests, nil
}

func (s *RequestService) GetByID(id uuid.UUID) (*models.DonationRequest, error) {
	var request models.DonationRequest
	if err := s.db.Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch donation request: %w", err)
	}
	return &request, nil
}

// UpdateStatus writes the caller-supplied status unconditionally. Zero
// matched rows report not-found rather than a false success.
func (s *RequestService) UpdateStatus(principalEmail string, id uuid.UUID, status string) error {
	if err := s.authorize(principalEmail, id); err != nil {
		return err
	}

	result := s.db.Model(&models.DonationRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update request status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// UpdateFields overwrites the mutable fields of a request. Message resets to
// the empty string when omitted, matching the creation default.
func (s *RequestService) UpdateFields(principalEmail string, id uuid.UUID, req *dto.UpdateDonationRequest) error {
	if err := s.authorize(principalEmail, id); err != nil {
		return err
	}

	fields := map[string]interface{}{
		"recipient_name": req.RecipientName,
		"blood_group":    req.BloodGroup,
		"district":       req.District,
		"upazila":        req.Upazila,
		"address":        req.Address,
		"hospital_name":  req.HospitalName,
		"donation_date":  req.DonationDate,
		"donation_time":  req.DonationTime,
		"message":        req.Message,
	}

	result := s.db.Model(&models.DonationRequest{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update donation request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (s *RequestService) Delete(principalEmail string, id uuid.UUID) error {
	if err := s.authorize(principalEmail, id); err != nil {
		return err
	}

	result := s.db.Where("id = ?", id).Delete(&models.DonationRequest{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete donation request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// ListPaged returns one page of requests newest-first plus the total count
// over the same filter. An empty email means no requester filter. Page is
// zero-based: the page skips size*page entries.
func (s *RequestService) ListPaged(email string, size, page int) ([]models.DonationRequest, int64, error) {
	query := s.db.Model(&models.DonationRequest{})
	if email != "" {
		query = query.Scopes(scope.ByRequester(email))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count donation requests: %w", err)
	}

	var requests []models.DonationRequest
	err := query.Scopes(scope.Newest()).
		Offset(size * page).
		Limit(size).
		Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list donation requests: %w", err)
	}

	return requests, total, nil
}

// authorize is the single ownership decision point for request mutation.
// With enforcement off (the default, matching observed behavior) any
// authenticated caller may mutate any request.
func (s *RequestService) authorize(principalEmail string, id uuid.UUID) error {
	if !s.enforceOwnership {
		return nil
	}

	request, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if request.RequesterEmail != principalEmail {
		return ErrRequestForbidden
	}
	return nil
}

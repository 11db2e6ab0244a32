package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bloodaid/backend/internal/dto"
	"github.com/bloodaid/backend/internal/models"
	"github.com/bloodaid/backend/internal/scope"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProfileForbidden = errors.New("profile belongs to another user")
)

// UserService is the user directory: registration, lookups, role/status
// administration and donor search.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register inserts a new user. Role and status are forced to donor/active
// server-side; whatever the caller sent for them is discarded. Email
// uniqueness is enforced by the store's unique index, not a pre-check.
func (s *UserService) Register(req *dto.RegisterUserRequest) (*models.User, error) {
	user := models.User{
		ID:         uuid.New(),
		Email:      req.Email,
		Name:       req.Name,
		Role:       models.RoleDonor,
		Status:     models.StatusActive,
		BloodGroup: req.BloodGroup,
		District:   req.District,
		Upazila:    req.Upazila,
		AvatarURL:  req.Avatar,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// UpdateStatus sets a user's status unconditionally. The value is not
// checked against the known set; the admin UI is trusted here.
func (s *UserService) UpdateStatus(email, status string) error {
	return s.updateField(email, "status", status)
}

// UpdateRole sets a user's role unconditionally, symmetric to UpdateStatus.
func (s *UserService) UpdateRole(email, role string) error {
	return s.updateField(email, "role", role)
}

func (s *UserService) updateField(email, column, value string) error {
	result := s.db.Model(&models.User{}).Where("email = ?", email).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update user %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateProfile lets a user edit their own record. The path email must match
// the verified principal; this is the one ownership check the API enforces.
func (s *UserService) UpdateProfile(principalEmail, email string, req *dto.UpdateProfileRequest) error {
	if principalEmail != email {
		return ErrProfileForbidden
	}

	fields := map[string]interface{}{
		"name":        req.Name,
		"blood_group": req.BloodGroup,
		"district":    req.District,
		"upazila":     req.Upazila,
	}
	if req.Avatar != "" {
		fields["avatar_url"] = req.Avatar
	}

	result := s.db.Model(&models.User{}).Where("email = ?", email).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SearchDonors returns active donors, newest first. Each supplied filter is
// an equality match ANDed with the base filter.
func (s *UserService) SearchDonors(bloodGroup, district, upazila string) ([]models.User, error) {
	query := s.db.Scopes(scope.ActiveDonors(), scope.Newest())
	if bloodGroup != "" {
		query = query.Where("blood_group = ?", bloodGroup)
	}
	if district != "" {
		query = query.Where("district = ?", district)
	}
	if upazila != "" {
		query = query.Where("upazila = ?", upazila)
	}

	var donors []models.User
	if err := query.Find(&donors).Error; err != nil {
		return nil, fmt.Errorf("failed to search donors: %w", err)
	}
	return donors, nil
}

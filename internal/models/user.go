package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Every self-registered user starts as a donor; volunteer and
// admin are assigned through the role-update endpoint.
const (
	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// User statuses.
const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// User is a donor or requester account. Email is the join key to donation
// requests and funding records.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name       string    `gorm:"size:255" json:"name"`
	Role       string    `gorm:"size:20;default:'donor'" json:"role"`
	Status     string    `gorm:"size:20;default:'active'" json:"status"`
	BloodGroup string    `gorm:"size:10;index" json:"bloodGroup"`
	District   string    `gorm:"size:100;index" json:"district"`
	Upazila    string    `gorm:"size:100" json:"upazila"`
	AvatarURL  string    `gorm:"size:500" json:"avatar"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

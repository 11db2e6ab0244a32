package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Funding records a completed monetary donation. DonorEmail always comes
// from the verified caller identity, never from the request body. Records
// are immutable once written.
type Funding struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DonorName  string         `gorm:"size:255" json:"name"`
	DonorEmail string         `gorm:"size:255;not null;index" json:"email"`
	Amount     float64        `gorm:"not null" json:"amount"`
	Meta       datatypes.JSON `gorm:"type:jsonb" json:"-"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

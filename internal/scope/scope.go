// Package scope holds the GORM query scopes shared by the directory and
// ledger services.
package scope

import (
	"gorm.io/gorm"

	"github.com/bloodaid/backend/internal/models"
)

// ByRequester filters donation requests to a single requester email.
func ByRequester(email string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("requester_email = ?", email)
	}
}

// ByDonor filters funding records to a single donor email.
func ByDonor(email string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("donor_email = ?", email)
	}
}

// ActiveDonors is the base filter for donor search: only users who
// registered as donors and are not blocked.
func ActiveDonors() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("role = ? AND status = ?", models.RoleDonor, models.StatusActive)
	}
}

// Newest orders by insertion time, most recent first.
func Newest() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}
}

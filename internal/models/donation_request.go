package models

import (
	"time"

	"github.com/google/uuid"
)

// Donation request statuses. The status-update endpoint writes whatever the
// caller sends; these constants cover the values the clients use, they are
// not enforced server-side.
const (
	RequestPending    = "pending"
	RequestInProgress = "inprogress"
	RequestDone       = "done"
	RequestCancelled  = "cancelled"
)

// DonationRequest is a plea for blood filed by a requester. RequesterEmail is
// captured verbatim at creation time.
type DonationRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterEmail string    `gorm:"size:255;not null;index" json:"requesterEmail"`
	RequesterName  string    `gorm:"size:255" json:"requesterName"`
	RecipientName  string    `gorm:"size:255" json:"recipientName"`
	BloodGroup     string    `gorm:"size:10;index" json:"bloodGroup"`
	District       string    `gorm:"size:100" json:"district"`
	Upazila        string    `gorm:"size:100" json:"upazila"`
	Address        string    `gorm:"size:500" json:"address"`
	HospitalName   string    `gorm:"size:255" json:"hospitalName"`
	DonationDate   string    `gorm:"size:20" json:"donationDate"`
	DonationTime   string    `gorm:"size:20" json:"donationTime"`
	Message        string    `gorm:"type:text" json:"message"`
	Status         string    `gorm:"size:20;default:'pending';index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

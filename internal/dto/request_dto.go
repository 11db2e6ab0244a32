package dto

import "github.com/bloodaid/backend/internal/models"

// CreateDonationRequest is the creation payload. Status is accepted for wire
// compatibility but ignored: new requests always start pending.
type CreateDonationRequest struct {
	RequesterEmail string `json:"requesterEmail"`
	RequesterName  string `json:"requesterName"`
	RecipientName  string `json:"recipientName"`
	BloodGroup     string `json:"bloodGroup"`
	District       string `json:"district"`
	Upazila        string `json:"upazila"`
	Address        string `json:"address"`
	HospitalName   string `json:"hospitalName"`
	DonationDate   string `json:"donationDate"`
	DonationTime   string `json:"donationTime"`
	Message        string `json:"message"`
	Status         string `json:"status"`
}

// UpdateDonationRequest overwrites the mutable fields of a request. An
// omitted message resets to the empty string.
type UpdateDonationRequest struct {
	RecipientName string `json:"recipientName"`
	BloodGroup    string `json:"bloodGroup"`
	District      string `json:"district"`
	Upazila       string `json:"upazila"`
	Address       string `json:"address"`
	HospitalName  string `json:"hospitalName"`
	DonationDate  string `json:"donationDate"`
	DonationTime  string `json:"donationTime"`
	Message       string `json:"message"`
}

// PagedRequestsResponse is a page of donation requests plus the total count
// over the same filter, for pagination UIs.
type PagedRequestsResponse struct {
	Data  []models.DonationRequest `json:"data"`
	Total int64                    `json:"total"`
}

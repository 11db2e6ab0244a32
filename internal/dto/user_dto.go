package dto

// RegisterUserRequest is the self-registration payload. Role and Status are
// accepted for wire compatibility but ignored: the server forces donor/active.
type RegisterUserRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	Avatar     string `json:"avatar"`
}

// UpdateProfileRequest carries the fields a user may change on their own
// profile. Avatar is only written when supplied.
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	Avatar     string `json:"avatar"`
}

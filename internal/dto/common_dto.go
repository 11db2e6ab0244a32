package dto

import "github.com/google/uuid"

// ErrorResponse is the wire shape for every failure.
type ErrorResponse struct {
	Message string `json:"message"`
}

// InsertResult acknowledges a successful insert.
type InsertResult struct {
	InsertedID uuid.UUID `json:"insertedId"`
}

// UpdateResult acknowledges a successful update.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult acknowledges a successful delete.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

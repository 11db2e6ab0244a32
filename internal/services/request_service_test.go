package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodaid/backend/internal/config"
	"github.com/bloodaid/backend/internal/dto"
	"github.com/bloodaid/backend/internal/models"
)

func newRequestService(t *testing.T, enforceOwnership bool) *RequestService {
	t.Helper()
	return NewRequestService(newTestDB(t), &config.Config{EnforceRequestOwnership: enforceOwnership})
}

func seedRequests(t *testing.T, svc *RequestService, email string, n int) []models.DonationRequest {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	seeded := make([]models.DonationRequest, 0, n)
	for i := 0; i < n; i++ {
		r := models.DonationRequest{
			ID:             uuid.New(),
			RequesterEmail: email,
			RecipientName:  fmt.Sprintf("patient %d", i),
			BloodGroup:     "O+",
			Status:         models.RequestPending,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, svc.db.Create(&r).Error)
		seeded = append(seeded, r)
	}
	return seeded
}

func TestCreateForcesPendingStatus(t *testing.T) {
	svc := newRequestService(t, false)

	created, err := svc.Create(&dto.CreateDonationRequest{
		RequesterEmail: "a@x.com",
		BloodGroup:     "O+",
		Status:         models.RequestDone,
	})
	require.NoError(t, err)

	stored, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, stored.Status)
	assert.Equal(t, "a@x.com", stored.RequesterEmail)
	assert.Equal(t, "O+", stored.BloodGroup)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newRequestService(t, false)

	_, err := svc.GetByID(uuid.New())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestListByRequesterNewestFirst(t *testing.T) {
	svc := newRequestService(t, false)
	seedRequests(t, svc, "a@x.com", 3)
	seedRequests(t, svc, "b@x.com", 2)

	requests, err := svc.ListByRequester("a@x.com")
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "patient 2", requests[0].RecipientName)
	assert.Equal(t, "patient 0", requests[2].RecipientName)
}

func TestUpdateStatusAcceptsAnyValue(t *testing.T) {
	svc := newRequestService(t, false)
	seeded := seedRequests(t, svc, "a@x.com", 1)

	// transitions are caller-driven; even unknown values are written
	require.NoError(t, svc.UpdateStatus("anyone@x.com", seeded[0].ID, "inprogress"))
	require.NoError(t, svc.UpdateStatus("anyone@x.com", seeded[0].ID, "whatever"))

	stored, err := svc.GetByID(seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "whatever", stored.Status)
}

func TestMutationsOnMissingIDReportNotFound(t *testing.T) {
	svc := newRequestService(t, false)
	missing := uuid.New()

	assert.ErrorIs(t, svc.UpdateStatus("a@x.com", missing, models.RequestDone), ErrRequestNotFound)
	assert.ErrorIs(t, svc.UpdateFields("a@x.com", missing, &dto.UpdateDonationRequest{}), ErrRequestNotFound)
	assert.ErrorIs(t, svc.Delete("a@x.com", missing), ErrRequestNotFound)
}

func TestUpdateFieldsOverwritesMessage(t *testing.T) {
	svc := newRequestService(t, false)

	created, err := svc.Create(&dto.CreateDonationRequest{
		RequesterEmail: "a@x.com",
		Message:        "please hurry",
	})
	require.NoError(t, err)

	err = svc.UpdateFields("a@x.com", created.ID, &dto.UpdateDonationRequest{
		RecipientName: "Karim",
		BloodGroup:    "B+",
	})
	require.NoError(t, err)

	stored, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Karim", stored.RecipientName)
	assert.Equal(t, "B+", stored.BloodGroup)
	// omitted message resets to empty, matching the creation default
	assert.Equal(t, "", stored.Message)
}

func TestDelete(t *testing.T) {
	svc := newRequestService(t, false)
	seeded := seedRequests(t, svc, "a@x.com", 1)

	require.NoError(t, svc.Delete("a@x.com", seeded[0].ID))

	_, err := svc.GetByID(seeded[0].ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestListPagedWindowAndTotal(t *testing.T) {
	svc := newRequestService(t, false)
	seedRequests(t, svc, "a@x.com", 15)
	seedRequests(t, svc, "b@x.com", 7)

	page0, total, err := svc.ListPaged("a@x.com", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	require.Len(t, page0, 10)
	assert.Equal(t, "patient 14", page0[0].RecipientName)

	page1, total, err := svc.ListPaged("a@x.com", 10, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	require.Len(t, page1, 5)
	assert.Equal(t, "patient 4", page1[0].RecipientName)

	// total is stable regardless of the window
	_, total, err = svc.ListPaged("a@x.com", 3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)

	all, total, err := svc.ListPaged("", 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 22, total)
	assert.Len(t, all, 22)
}

func TestOwnershipEnforcement(t *testing.T) {
	svc := newRequestService(t, true)
	seeded := seedRequests(t, svc, "owner@x.com", 1)
	id := seeded[0].ID

	assert.ErrorIs(t, svc.UpdateStatus("intruder@x.com", id, models.RequestCancelled), ErrRequestForbidden)
	assert.ErrorIs(t, svc.UpdateFields("intruder@x.com", id, &dto.UpdateDonationRequest{}), ErrRequestForbidden)
	assert.ErrorIs(t, svc.Delete("intruder@x.com", id), ErrRequestForbidden)

	require.NoError(t, svc.UpdateStatus("owner@x.com", id, models.RequestDone))
	require.NoError(t, svc.Delete("owner@x.com", id))
}

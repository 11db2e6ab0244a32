package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bloodaid/backend/internal/auth"
	"github.com/bloodaid/backend/internal/config"
	"github.com/bloodaid/backend/internal/dto"
	"github.com/bloodaid/backend/internal/handlers"
	"github.com/bloodaid/backend/internal/models"
	"github.com/bloodaid/backend/internal/routes"
	"github.com/bloodaid/backend/internal/services"
)

type stubVerifier struct {
	calls int
	email string
}

func (s *stubVerifier) Verify(token string) (*auth.Principal, error) {
	s.calls++
	return &auth.Principal{Email: s.email}, nil
}

type stubCheckout struct {
	calls      int
	lastAmount int64
}

func (s *stubCheckout) CreateCheckoutSession(amountMinor int64, donorEmail, donorName string) (string, error) {
	s.calls++
	s.lastAmount = amountMinor
	return "https://pay.example/s", nil
}

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	verifier *stubVerifier
	checkout *stubCheckout
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.DonationRequest{}, &models.Funding{}))

	verifier := &stubVerifier{email: "a@x.com"}
	checkout := &stubCheckout{}
	cfg := &config.Config{}

	userHandler := handlers.NewUserHandler(services.NewUserService(db))
	requestHandler := handlers.NewRequestHandler(services.NewRequestService(db, cfg))
	fundingHandler := handlers.NewFundingHandler(services.NewFundingService(db, checkout))
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New()
	routes.Setup(app, verifier, userHandler, requestHandler, fundingHandler, healthHandler)

	return &testEnv{app: app, db: db, verifier: verifier, checkout: checkout}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, authenticated bool) *http.Response {
	t.Helper()

	var payload *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(b)
	} else {
		payload = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer test-token")
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegisterForcesRoleAndStatus(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/users", fiber.Map{
		"email":  "a@x.com",
		"name":   "Asha",
		"role":   "admin",
		"status": "blocked",
	}, false)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "email = ?", "a@x.com").Error)
	assert.Equal(t, models.RoleDonor, stored.Role)
	assert.Equal(t, models.StatusActive, stored.Status)
}

func TestRegisterRequiresEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/users", fiber.Map{"name": "Asha"}, false)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGuardedRoutesRejectMissingToken(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/users"},
		{"POST", "/requests"},
		{"GET", "/requests"},
		{"GET", "/my-request"},
		{"GET", "/funding-history"},
	} {
		resp := env.request(t, route.method, route.path, nil, false)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
		assert.Equal(t, "unauthorized access", decodeError(t, resp).Message)
	}
	assert.Equal(t, 0, env.verifier.calls)
}

func TestProfileUpdateIsSelfOnly(t *testing.T) {
	env := newTestEnv(t)
	for _, email := range []string{"a@x.com", "b@x.com"} {
		resp := env.request(t, "POST", "/users", fiber.Map{"email": email}, false)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	// token belongs to a@x.com
	resp := env.request(t, "PATCH", "/users/b@x.com", fiber.Map{"name": "Mallory"}, true)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, "PATCH", "/users/a@x.com", fiber.Map{"name": "Asha", "bloodGroup": "O+"}, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "email = ?", "a@x.com").Error)
	assert.Equal(t, "Asha", stored.Name)
}

func TestCreateRequestForcesPending(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/requests", fiber.Map{
		"requesterEmail": "a@x.com",
		"bloodGroup":     "O+",
		"status":         "done",
	}, true)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result dto.InsertResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	var stored models.DonationRequest
	require.NoError(t, env.db.First(&stored, "id = ?", result.InsertedID).Error)
	assert.Equal(t, models.RequestPending, stored.Status)
}

func TestGetRequestIDValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/requests/not-a-uuid", nil, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, "GET", "/requests/"+uuid.NewString(), nil, true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRequestStatusUpdateViaQuery(t *testing.T) {
	env := newTestEnv(t)

	r := models.DonationRequest{ID: uuid.New(), RequesterEmail: "a@x.com", Status: models.RequestPending}
	require.NoError(t, env.db.Create(&r).Error)

	resp := env.request(t, "PATCH", "/update/request/status?id="+r.ID.String(), nil, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, "PATCH", "/update/request/status?id="+r.ID.String()+"&status=inprogress", nil, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.DonationRequest
	require.NoError(t, env.db.First(&stored, "id = ?", r.ID).Error)
	assert.Equal(t, models.RequestInProgress, stored.Status)

	resp = env.request(t, "PATCH", "/update/request/status?id="+uuid.NewString()+"&status=done", nil, true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDashboardFiltersByEmail(t *testing.T) {
	env := newTestEnv(t)

	base := time.Now().Add(-time.Hour)
	for i, email := range []string{"a@x.com", "a@x.com", "b@x.com"} {
		r := models.DonationRequest{
			ID:             uuid.New(),
			RequesterEmail: email,
			RecipientName:  "patient",
			Status:         models.RequestPending,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, env.db.Create(&r).Error)
	}

	resp := env.request(t, "GET", "/dashboard/requests?email=a@x.com", nil, false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var filtered []models.DonationRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&filtered))
	assert.Len(t, filtered, 2)

	resp = env.request(t, "GET", "/dashboard/requests", nil, false)
	var all []models.DonationRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Len(t, all, 3)
}

func TestPagedRequestsShape(t *testing.T) {
	env := newTestEnv(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		r := models.DonationRequest{
			ID:             uuid.New(),
			RequesterEmail: "a@x.com",
			Status:         models.RequestPending,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, env.db.Create(&r).Error)
	}

	resp := env.request(t, "GET", "/my-request?size=5&page=1", nil, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page dto.PagedRequestsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Len(t, page.Data, 5)
	assert.EqualValues(t, 12, page.Total)
}

func TestCheckoutRejectsZeroAmount(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/create-payment-checkout", fiber.Map{"donateAmount": 0}, false)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, env.checkout.calls)
}

func TestCheckoutReturnsRedirectURL(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/create-payment-checkout", fiber.Map{
		"email":        "a@x.com",
		"donateAmount": 25.5,
	}, false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.CheckoutResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "https://pay.example/s", body.URL)
	assert.EqualValues(t, 2550, env.checkout.lastAmount)
}

func TestRecordFundingIgnoresBodyEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/funding-history", fiber.Map{
		"name":   "Asha",
		"email":  "spoofed@x.com",
		"amount": 42,
	}, true)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var stored models.Funding
	require.NoError(t, env.db.First(&stored, "donor_email = ?", "a@x.com").Error)
	assert.EqualValues(t, 42, stored.Amount)

	var count int64
	env.db.Model(&models.Funding{}).Where("donor_email = ?", "spoofed@x.com").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestLiveness(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/", nil, false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "GET", "/health", nil, false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

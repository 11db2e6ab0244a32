package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/bloodaid/backend/internal/auth"
	"github.com/bloodaid/backend/internal/handlers"
	"github.com/bloodaid/backend/internal/middleware"
)

// Setup registers the full HTTP surface. Guarded routes get the bearer-token
// middleware per route; everything else is public.
func Setup(
	app *fiber.App,
	verifier auth.TokenVerifier,
	userHandler *handlers.UserHandler,
	requestHandler *handlers.RequestHandler,
	fundingHandler *handlers.FundingHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Rate limiter: 60 req/min per IP, liveness endpoints excluded.
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/" || c.Path() == "/health"
		},
	}))

	guard := middleware.Protected(verifier)

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	// User directory
	app.Post("/users", userHandler.Register)
	app.Get("/users", guard, userHandler.GetAll)
	app.Get("/users/role/:email", userHandler.GetRole)
	app.Get("/users/:email", userHandler.GetByEmail)
	app.Patch("/users/:email", guard, userHandler.UpdateProfile)
	app.Patch("/update/user/status", guard, userHandler.UpdateStatus)
	app.Patch("/update/user/role", guard, userHandler.UpdateRole)
	app.Get("/donor-search", userHandler.SearchDonors)

	// Request ledger
	app.Post("/requests", guard, requestHandler.Create)
	app.Get("/requests", guard, requestHandler.ListAll)
	app.Get("/requests/:id", guard, requestHandler.GetByID)
	app.Patch("/requests/:id", guard, requestHandler.UpdateFields)
	app.Delete("/requests/:id", guard, requestHandler.Delete)
	app.Get("/dashboard/requests", requestHandler.Dashboard)
	app.Patch("/update/request/status", guard, requestHandler.UpdateStatus)
	app.Get("/my-request", guard, requestHandler.MyRequests)
	app.Get("/all-request", guard, requestHandler.AllRequests)

	// Funding ledger
	app.Post("/create-payment-checkout", fundingHandler.CreateCheckout)
	app.Post("/funding-history", guard, fundingHandler.RecordFunding)
	app.Get("/funding-history", guard, fundingHandler.ListMyFunding)
}

package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gigflow/api/internal/config"
	"github.com/gigflow/api/internal/handler"
	"github.com/gigflow/api/internal/middleware"
	"github.com/gigflow/api/internal/service"
	"github.com/gigflow/api/internal/store"
	ws "github.com/gigflow/api/internal/websocket"
)

const testJWTSecret = "test-secret-for-e2e"

// testApp holds all components needed for testing
type testApp struct {
	app *fiber.App
}

// setupApp creates a Fiber app wired like main.go but backed by an
// in-memory SQLite database. The rate limiter points at a local Redis
// and fails open when none is running; limits are set high enough that
// tests never trip them either way.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db, err := store.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // use DB 15 for tests to avoid collision
	})
	t.Cleanup(func() { redisClient.Close() })

	validate := validator.New()

	hub := ws.NewHub()
	go hub.Run()

	userStore := store.NewUserStore(db)
	gigStore := store.NewGigStore(db)
	bidStore := store.NewBidStore(db)

	authService := service.NewAuthService(userStore, testJWTSecret, 24)
	gigService := service.NewGigService(gigStore)
	bidService := service.NewBidService(bidStore, gigStore, hub)

	authHandler := handler.NewAuthHandler(authService, validate)
	gigHandler := handler.NewGigHandler(gigService, validate)
	bidHandler := handler.NewBidHandler(bidService, validate)

	authMiddleware := middleware.NewAuthMiddleware(testJWTSecret)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", rateLimiter.AuthLimit(10000), authHandler.Register)
	authGroup.Post("/login", rateLimiter.AuthLimit(10000), authHandler.Login)
	authGroup.Post("/logout", authMiddleware.Authenticate(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Authenticate(), authHandler.Me)

	gigs := app.Group("/api/gigs")
	gigs.Get("/", rateLimiter.APILimit(10000), gigHandler.List)
	gigs.Get("/my-gigs", authMiddleware.Authenticate(), gigHandler.MyGigs)
	gigs.Post("/", authMiddleware.Authenticate(), gigHandler.Create)
	gigs.Get("/:id", rateLimiter.APILimit(10000), gigHandler.Get)

	bids := app.Group("/api/bids", authMiddleware.Authenticate())
	bids.Get("/my-bids", bidHandler.MyBids)
	bids.Post("/", rateLimiter.BidLimit(10000), bidHandler.Create)
	bids.Patch("/:bidId/hire", bidHandler.Hire)
	bids.Patch("/:bidId/reject", bidHandler.Reject)
	bids.Get("/:gigId", bidHandler.ListForGig)

	return &testApp{app: app}
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path, body, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return app.Test(req, -1)
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

// errorCode digs the error code out of the error envelope.
func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser creates an account through the API and returns its
// token and user id.
func registerUser(t *testing.T, app *fiber.App, name string) (token, userID string) {
	t.Helper()

	payload := fmt.Sprintf(`{"name":%q,"email":%q,"password":"hunter22"}`, name, name+"@example.com")
	resp, err := doRequest(app, http.MethodPost, "/api/auth/register", payload, "")
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusCreated)

	body := parseJSON(t, resp)
	token, _ = body["token"].(string)
	user, _ := body["user"].(map[string]interface{})
	userID, _ = user["id"].(string)
	if token == "" || userID == "" {
		t.Fatalf("registration returned no token or user id: %v", body)
	}
	return token, userID
}

// createGig posts a gig and returns its id.
func createGig(t *testing.T, app *fiber.App, token, title string, budget float64) string {
	t.Helper()

	payload := fmt.Sprintf(`{"title":%q,"description":"A long enough description of the work involved.","budget":%g}`, title, budget)
	resp, err := doRequest(app, http.MethodPost, "/api/gigs/", payload, token)
	if err != nil {
		t.Fatalf("create gig request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusCreated)

	body := parseJSON(t, resp)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("gig creation returned no id: %v", body)
	}
	return id
}

// placeBid posts a bid and returns its id.
func placeBid(t *testing.T, app *fiber.App, token, gigID string, price float64) string {
	t.Helper()

	payload := fmt.Sprintf(`{"gigId":%q,"message":"I can deliver this work on time.","price":%g}`, gigID, price)
	resp, err := doRequest(app, http.MethodPost, "/api/bids/", payload, token)
	if err != nil {
		t.Fatalf("place bid request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusCreated)

	body := parseJSON(t, resp)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("bid creation returned no id: %v", body)
	}
	return id
}

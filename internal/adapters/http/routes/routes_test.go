package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"growthpot/internal/adapters/http/middleware"
	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Cookie: config.CookieConfig{SameSite: "Lax"},
	}
	config.AppConfig = cfg

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, db, cfg)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func registerUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"email":     username + "@example.com",
		"username":  username,
		"password":  "secret-pass-123",
		"full_name": "Test " + username,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	return data["access_token"].(string)
}

func TestAuthFlow(t *testing.T) {
	app := setupTestApp(t)

	token := registerUser(t, app, "arjun")

	// Login with the same credentials
	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"username": "arjun",
		"password": "secret-pass-123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bad password
	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"username": "arjun",
		"password": "nope-nope-nope",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Bearer token grants access to /auth/me
	resp, body := doJSON(t, app, "GET", "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	require.Equal(t, "arjun", user["username"])

	// No token, no entry
	resp, _ = doJSON(t, app, "GET", "/api/v1/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFundLifecycleOverHTTP(t *testing.T) {
	app := setupTestApp(t)

	adminToken := registerUser(t, app, "priya")
	memberToken := registerUser(t, app, "arjun")

	// Admin creates a fund
	resp, body := doJSON(t, app, "POST", "/api/v1/funds", adminToken, fiber.Map{
		"name":         "Street Pot",
		"total_amount": 60000,
		"duration":     6,
		"member_count": 6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	fund := body["data"].(map[string]interface{})
	joinCode := fund["join_code"].(string)
	fundID := int(fund["id"].(float64))
	require.Len(t, joinCode, 6)

	// Creation leaves the fund empty; the admin redeems their own code to
	// take part, the member joins the same way
	for _, token := range []string{adminToken, memberToken} {
		resp, _ = doJSON(t, app, "POST", "/api/v1/funds/join", token, fiber.Map{
			"join_code": joinCode,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// Bad code is a 404
	resp, _ = doJSON(t, app, "POST", "/api/v1/funds/join", memberToken, fiber.Map{
		"join_code": "ZZZZZZ",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Both see the fund in their list
	for _, token := range []string{adminToken, memberToken} {
		resp, body = doJSON(t, app, "GET", "/api/v1/funds", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, body["data"].([]interface{}), 1)
	}

	// Member submits a payment for month 1
	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/api/v1/funds/%d/payments", fundID), memberToken, fiber.Map{
		"month":  1,
		"amount": 10000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Resubmission conflicts
	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/api/v1/funds/%d/payments", fundID), memberToken, fiber.Map{
		"month":  1,
		"amount": 10000,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Member cannot spin
	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/api/v1/funds/%d/spin", fundID), memberToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Fund details include both memberships
	resp, body = doJSON(t, app, "GET", fmt.Sprintf("/api/v1/funds/%d", fundID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	details := body["data"].(map[string]interface{})
	require.Len(t, details["members"].([]interface{}), 2)
	require.Equal(t, true, details["is_admin"])
}

func TestHealthEndpoints(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "GET", "/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "running", body["status"])

	resp, _ = doJSON(t, app, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

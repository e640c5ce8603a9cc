package middleware

import (
	"encoding/json"
	"foodgarden/pkg/auth"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "gate-test-secret"

func setupGateApp(t *testing.T) (*fiber.App, *auth.SessionAuth) {
	t.Helper()

	sessions, err := auth.NewSessionAuth(testSecret, 2*time.Hour, false)
	if err != nil {
		t.Fatalf("Failed to create session auth: %v", err)
	}

	app := fiber.New()
	app.Get("/protected", RequireAuth(sessions), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"email": c.Locals("user_email"),
		})
	})

	return app, sessions
}

func gateRequest(t *testing.T, app *fiber.App, cookie string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", "/protected", nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("Failed to parse response %q: %v", body, err)
	}

	return resp.StatusCode, parsed
}

func TestRequireAuthNoCookie(t *testing.T) {
	app, _ := setupGateApp(t)

	status, body := gateRequest(t, app, "")
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}
	if body["code"] != CodeNoToken {
		t.Errorf("Expected code %q, got %v", CodeNoToken, body["code"])
	}
	if body["success"] != false {
		t.Errorf("Expected success=false, got %v", body["success"])
	}
}

func TestRequireAuthEmptyCookieValue(t *testing.T) {
	app, _ := setupGateApp(t)

	// A cleared cookie still sent by a confused client counts as no token.
	status, body := gateRequest(t, app, auth.SessionCookieName+"=")
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}
	if body["code"] != CodeNoToken {
		t.Errorf("Expected code %q, got %v", CodeNoToken, body["code"])
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	app, sessions := setupGateApp(t)

	token, err := sessions.Issue("u@example.com")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	status, body := gateRequest(t, app, auth.SessionCookieName+"="+token)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if body["email"] != "u@example.com" {
		t.Errorf("Expected identity email u@example.com, got %v", body["email"])
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	app, _ := setupGateApp(t)

	claims := auth.SessionClaims{
		Email: "u@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign expired token: %v", err)
	}

	status, body := gateRequest(t, app, auth.SessionCookieName+"="+expired)
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}
	if body["code"] != CodeExpiredToken {
		t.Errorf("Expected code %q, got %v", CodeExpiredToken, body["code"])
	}
}

func TestRequireAuthForeignSecret(t *testing.T) {
	app, _ := setupGateApp(t)

	claims := auth.SessionClaims{
		Email: "u@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-secret"))
	if err != nil {
		t.Fatalf("Failed to sign forged token: %v", err)
	}

	status, body := gateRequest(t, app, auth.SessionCookieName+"="+forged)
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}
	if body["code"] != CodeInvalidToken {
		t.Errorf("Expected code %q, got %v", CodeInvalidToken, body["code"])
	}
}

func TestRequireAuthGarbageToken(t *testing.T) {
	app, _ := setupGateApp(t)

	status, body := gateRequest(t, app, auth.SessionCookieName+"=not-a-jwt")
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}
	if body["code"] != CodeInvalidToken {
		t.Errorf("Expected code %q, got %v", CodeInvalidToken, body["code"])
	}
}

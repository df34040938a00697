package handlers_test_suite

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	api "github.com/iEkal8fGe/warehouse/internal/http"
	handler "github.com/iEkal8fGe/warehouse/internal/http/handlers"
	rl "github.com/iEkal8fGe/warehouse/internal/http/rate_limiter"
	"github.com/iEkal8fGe/warehouse/internal/models"
)

func TestLoginReturnsTokenAndRole(t *testing.T) {
	r := api.NewRouter()

	w := login(r, "admin", testPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}
	if resp.TokenType != "bearer" {
		t.Errorf("expected token_type bearer, got %q", resp.TokenType)
	}
	if resp.Role != models.RoleAdmin {
		t.Errorf("expected role admin, got %q", resp.Role)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	r := api.NewRouter()

	w := login(r, "admin", "not-the-password")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	if detail(w) != "Incorrect username or password" {
		t.Errorf("unexpected detail %q", detail(w))
	}

	// Unknown usernames get the same message as wrong passwords.
	w = login(r, "nobody", testPassword)
	if w.Code != http.StatusBadRequest || detail(w) != "Incorrect username or password" {
		t.Errorf("expected identical rejection for unknown user, got %d %q", w.Code, detail(w))
	}
}

func TestLoginInactiveUser(t *testing.T) {
	r := api.NewRouter()

	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	u, err := userRepo.Create(context.Background(), models.User{
		Username:     "former-employee",
		PasswordHash: string(hash),
		Role:         models.RoleEmployee,
		IsActive:     false,
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	t.Cleanup(func() { userRepo.Delete(context.Background(), u.ID) })

	w := login(r, "former-employee", testPassword)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	if detail(w) != "Inactive user" {
		t.Errorf("unexpected detail %q", detail(w))
	}
}

func TestMeReturnsCurrentUser(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/auth/me", nil, employeeToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.UserResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Username != "picker" {
		t.Errorf("expected username picker, got %q", resp.Username)
	}
	if resp.Role != models.RoleEmployee || resp.IsSuperuser {
		t.Errorf("expected plain employee, got role=%q is_superuser=%v", resp.Role, resp.IsSuperuser)
	}
	if resp.WarehouseID == nil || *resp.WarehouseID != mainWarehouseID {
		t.Errorf("expected warehouse %d, got %v", mainWarehouseID, resp.WarehouseID)
	}
}

func TestMeWithoutToken(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/auth/me", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestMeWithGarbageToken(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/auth/me", nil, "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	r := api.NewRouter()

	token, err := generateToken(r, "picker", testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/api/v1/auth/logout", nil, token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d: %s", w.Code, w.Body.String())
	}

	// The revoked token no longer passes the auth middleware.
	w = doJSON(r, http.MethodGet, "/api/v1/auth/me", nil, token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", w.Code)
	}
}

func TestLoginHandler_RateLimited(t *testing.T) {
	rl.SetLimits(0, 1)
	rl.CleanupAllVisitors()
	t.Cleanup(func() {
		rl.SetLimits(1000, 1000)
		rl.CleanupAllVisitors()
	})

	r := api.NewRouter()

	// The single burst token admits one attempt; the next from the same IP
	// is throttled before credentials are even checked.
	w := login(r, "picker", "wrong-password")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad credentials, got %d: %s", w.Code, w.Body.String())
	}

	w = login(r, "picker", testPassword)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 Too Many Requests, got %d: %s", w.Code, w.Body.String())
	}
	if got := detail(w); got != "Too many login attempts" {
		t.Errorf("unexpected detail %q", got)
	}
}

package handlers_test_suite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	api "github.com/iEkal8fGe/warehouse/internal/http"
	handler "github.com/iEkal8fGe/warehouse/internal/http/handlers"
	"github.com/iEkal8fGe/warehouse/internal/models"
)

func TestCreateUserHandler_Valid(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/users", handler.UserCreateRequest{
		Username:    "packer",
		Password:    "s3cret!",
		Role:        models.RoleEmployee,
		WarehouseID: &mainWarehouseID,
	}, adminToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.UserResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	t.Cleanup(func() { userRepo.Delete(context.Background(), resp.ID) })

	if resp.Username != "packer" {
		t.Errorf("expected username packer, got %q", resp.Username)
	}
	if !resp.IsActive {
		t.Error("expected new user active by default")
	}
	if resp.IsSuperuser {
		t.Error("expected is_superuser false for employee")
	}
}

func TestCreateUserHandler_DuplicateUsername(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/users", handler.UserCreateRequest{
		Username: "picker",
		Password: "s3cret!",
		Role:     models.RoleEmployee,
	}, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	if detail(w) != "Username already registered" {
		t.Errorf("unexpected detail %q", detail(w))
	}
}

func TestCreateUserHandler_Invalid(t *testing.T) {
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.UserCreateRequest
		expectedErrors []string
	}{
		{
			name:           "Short username and password",
			payload:        handler.UserCreateRequest{Username: "ab", Password: "123", Role: models.RoleEmployee},
			expectedErrors: []string{"username", "password"},
		},
		{
			name:           "Invalid role",
			payload:        handler.UserCreateRequest{Username: "valid", Password: "validpw", Role: "manager"},
			expectedErrors: []string{"role"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/v1/users", tt.payload, adminToken)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 Bad Request, got %d", w.Code)
			}

			var resp []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestUserRoutesRequireAdmin(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/users", nil, employeeToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d", w.Code)
	}
	if detail(w) != "Not enough permissions" {
		t.Errorf("unexpected detail %q", detail(w))
	}
}

func TestUpdateUserWithoutPasswordKeepsOldPassword(t *testing.T) {
	r := api.NewRouter()

	created := mustCreateUser(t, r, "lift-driver")

	w := doJSON(r, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", created.ID),
		handler.UserUpdateRequest{WarehouseID: &otherWarehouseID}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	// The original password still works after the partial update.
	if lw := login(r, "lift-driver", testPassword); lw.Code != http.StatusOK {
		t.Errorf("expected original password to survive update, login got %d", lw.Code)
	}
}

func TestUpdateUserChangesPasswordWhenProvided(t *testing.T) {
	r := api.NewRouter()

	created := mustCreateUser(t, r, "night-shift")

	newPassword := "rotated"
	w := doJSON(r, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", created.ID),
		handler.UserUpdateRequest{Password: &newPassword}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	if lw := login(r, "night-shift", testPassword); lw.Code != http.StatusBadRequest {
		t.Errorf("expected old password rejected, login got %d", lw.Code)
	}
	if lw := login(r, "night-shift", newPassword); lw.Code != http.StatusOK {
		t.Errorf("expected new password accepted, login got %d", lw.Code)
	}
}

func TestUpdateUserSelfDeactivationRejected(t *testing.T) {
	r := api.NewRouter()

	inactive := false
	w := doJSON(r, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", adminID),
		handler.UserUpdateRequest{IsActive: &inactive}, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	if detail(w) != "Can not deactivate yourself" {
		t.Errorf("unexpected detail %q", detail(w))
	}
}

func TestDeleteUserSelfRejected(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", adminID), nil, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	if detail(w) != "Can not remove yourself" {
		t.Errorf("unexpected detail %q", detail(w))
	}
}

func TestDeleteUserHandler(t *testing.T) {
	r := api.NewRouter()

	created := mustCreateUser(t, r, "temp-worker")

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", created.ID), nil, adminToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", created.ID), nil, adminToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after deletion, got %d", w.Code)
	}
}

func TestListUsersSearchAndRoleFilter(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/users?search=pick&role=employee", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.UserList
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 match, got %d", resp.Total)
	}
	if resp.Users[0].Username != "picker" {
		t.Errorf("expected picker, got %q", resp.Users[0].Username)
	}
}

func mustCreateUser(t *testing.T, r http.Handler, username string) handler.UserResponse {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/v1/users", handler.UserCreateRequest{
		Username: username,
		Password: testPassword,
		Role:     models.RoleEmployee,
	}, adminToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("seeding user %q: got %d: %s", username, w.Code, w.Body.String())
	}

	var resp handler.UserResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	t.Cleanup(func() { userRepo.Delete(context.Background(), resp.ID) })
	return resp
}

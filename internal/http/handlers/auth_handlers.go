package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/iEkal8fGe/warehouse/internal/auth"
)

// LoginHandler exchanges form-encoded credentials for an access token.
// The endpoint is OAuth2-password-flow shaped: the body is
// application/x-www-form-urlencoded, not JSON.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		errorJSON(w, http.StatusBadRequest, "Incorrect username or password")
		return
	}

	user, err := userRepo.GetByUsername(r.Context(), username)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Incorrect username or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		errorJSON(w, http.StatusBadRequest, "Incorrect username or password")
		return
	}

	if !user.IsActive {
		errorJSON(w, http.StatusBadRequest, "Inactive user")
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		errorJSON(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	if err := writeJSON(w, http.StatusOK, LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        user.Role,
	}); err != nil {
		logrus.WithError(err).Error("failed to write login response")
	}
}

// MeHandler returns the user behind the presented token.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// LogoutHandler revokes the presented token until it would have expired
// anyway. Clients treat this as best-effort.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := revoker.Revoke(r.Context(), claims.JTI, claims.ExpiresAt); err != nil {
		logrus.WithError(err).Warn("failed to revoke token on logout")
		errorJSON(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

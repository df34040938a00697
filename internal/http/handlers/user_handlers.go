package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/iEkal8fGe/warehouse/internal/models"
	"github.com/iEkal8fGe/warehouse/internal/repo"
)

func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if validationErrors := validateUserCreate(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Role:         req.Role,
		IsActive:     isActive,
		WarehouseID:  req.WarehouseID,
	}

	created, err := userRepo.Create(r.Context(), user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			errorJSON(w, http.StatusBadRequest, "Username already registered")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not create user")
		return
	}

	writeJSON(w, http.StatusCreated, newUserResponse(created))
}

func GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := userRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			errorJSON(w, http.StatusNotFound, "User not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch user")
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	q := r.URL.Query()

	filter := repo.UserFilter{
		Search:     q.Get("search"),
		ActiveOnly: q.Get("active_only") == "true",
		Offset:     (page - 1) * perPage,
		Limit:      perPage,
	}
	if roleStr := q.Get("role"); roleStr != "" {
		role := models.Role(roleStr)
		if !role.Valid() {
			errorJSON(w, http.StatusBadRequest, "Invalid role filter")
			return
		}
		filter.Role = &role
	}

	users, total, err := userRepo.List(r.Context(), filter)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not fetch users")
		return
	}

	resp := UserList{
		Total:   total,
		Page:    page,
		Pages:   pageCount(total, perPage),
		PerPage: perPage,
		Users:   make([]UserResponse, len(users)),
	}
	for i, u := range users {
		resp.Users[i] = newUserResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateUserHandler applies a partial update. The password changes only
// when the field is present and non-empty.
func UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UserUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := userRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			errorJSON(w, http.StatusNotFound, "User not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch user")
		return
	}

	claims, _ := ClaimsFromContext(r.Context())
	if req.IsActive != nil && !*req.IsActive && claims.UserID == id {
		errorJSON(w, http.StatusBadRequest, "Can not deactivate yourself")
		return
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := userRepo.GetByUsername(r.Context(), *req.Username); err == nil {
			errorJSON(w, http.StatusBadRequest, "Username already registered")
			return
		}
		user.Username = *req.Username
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			writeJSON(w, http.StatusBadRequest, []ValidationError{
				{Field: "password", Description: "Password must be at least 6 characters"},
			})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			errorJSON(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.PasswordHash = string(hashed)
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			writeJSON(w, http.StatusBadRequest, []ValidationError{
				{Field: "role", Description: "Role must be admin or employee"},
			})
			return
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.WarehouseID != nil {
		user.WarehouseID = req.WarehouseID
	}

	updated, err := userRepo.Update(r.Context(), user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			errorJSON(w, http.StatusBadRequest, "Username already registered")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not update user")
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(updated))
}

func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	claims, _ := ClaimsFromContext(r.Context())
	if claims.UserID == id {
		errorJSON(w, http.StatusBadRequest, "Can not remove yourself")
		return
	}

	if err := userRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			errorJSON(w, http.StatusNotFound, "User not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

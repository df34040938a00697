package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/iEkal8fGe/warehouse/internal/models"
	"github.com/iEkal8fGe/warehouse/internal/repo"
)

func CreateWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	var req WarehouseRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if validationErrors := validateWarehouse(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	warehouse := models.Warehouse{
		Name:        req.Name,
		State:       req.State,
		City:        req.City,
		IsActive:    isActive,
		Description: req.Description,
	}

	created, err := warehouseRepo.Create(r.Context(), warehouse)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not create warehouse")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetWarehouseByIDHandler returns the warehouse with its assigned users.
func GetWarehouseByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid warehouse ID")
		return
	}

	warehouse, err := warehouseRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrWarehouseNotFound) {
			errorJSON(w, http.StatusNotFound, "Warehouse not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch warehouse")
		return
	}

	users, err := userRepo.ListByWarehouse(r.Context(), id)
	if err != nil {
		logrus.WithError(err).Warn("failed to load warehouse users")
	}

	resp := WarehouseResponse{Warehouse: warehouse, Users: make([]UserResponse, len(users))}
	for i, u := range users {
		resp.Users[i] = newUserResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

func ListWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	q := r.URL.Query()

	filter := repo.WarehouseFilter{
		Search:     q.Get("search"),
		ActiveOnly: q.Get("active_only") == "true",
		Offset:     (page - 1) * perPage,
		Limit:      perPage,
	}

	warehouses, total, err := warehouseRepo.List(r.Context(), filter)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not fetch warehouses")
		return
	}

	writeJSON(w, http.StatusOK, WarehouseList{
		Total:      total,
		Page:       page,
		Pages:      pageCount(total, perPage),
		PerPage:    perPage,
		Warehouses: warehouses,
	})
}

func UpdateWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid warehouse ID")
		return
	}

	var req WarehouseUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid input")
		return
	}

	warehouse, err := warehouseRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrWarehouseNotFound) {
			errorJSON(w, http.StatusNotFound, "Warehouse not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch warehouse")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			writeJSON(w, http.StatusBadRequest, []ValidationError{
				{Field: "name", Description: "Name is required"},
			})
			return
		}
		warehouse.Name = *req.Name
	}
	if req.State != nil {
		warehouse.State = *req.State
	}
	if req.City != nil {
		warehouse.City = *req.City
	}
	if req.IsActive != nil {
		warehouse.IsActive = *req.IsActive
	}
	if req.Description != nil {
		warehouse.Description = *req.Description
	}

	updated, err := warehouseRepo.Update(r.Context(), warehouse)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not update warehouse")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func DeleteWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid warehouse ID")
		return
	}

	if err := warehouseRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrWarehouseNotFound) {
			errorJSON(w, http.StatusNotFound, "Warehouse not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not delete warehouse")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

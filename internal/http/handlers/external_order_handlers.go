package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iEkal8fGe/warehouse/internal/models"
	"github.com/iEkal8fGe/warehouse/internal/repo"
)

// External order sync endpoints serve the upstream shop system. They sit
// behind an X-API-Key check instead of user tokens.

func SyncExternalOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req ExternalOrderCreateRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if validationErrors := validateExternalOrder(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	if _, err := warehouseRepo.GetByID(r.Context(), req.WarehouseID); err != nil {
		errorJSON(w, http.StatusNotFound, "Warehouse not found")
		return
	}

	order := models.Order{
		ExternalOrderID: req.ExternalOrderID,
		WarehouseID:     req.WarehouseID,
		Status:          models.OrderStatusNew,
		PostalCode:      req.PostalCode,
		Country:         req.Country,
		City:            req.City,
		Address:         req.Address,
		Notes:           req.Notes,
		Items:           make([]models.OrderItem, len(req.Items)),
	}
	for i, item := range req.Items {
		order.Items[i] = models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	created, err := orderRepo.Create(r.Context(), order)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			errorJSON(w, http.StatusConflict, "Order already synced")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not create order")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func SyncExternalOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req ExternalOrderStatusUpdate
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ExternalOrderID == "" || !req.StatusCode.Valid() {
		errorJSON(w, http.StatusBadRequest, "external_order_id and a valid status_code are required")
		return
	}

	order, err := orderRepo.GetByExternalID(r.Context(), req.ExternalOrderID)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			errorJSON(w, http.StatusNotFound, "Order not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch order")
		return
	}

	order.Status = req.StatusCode
	if req.StatusCode == models.OrderStatusShipped && order.ShippedAt == nil {
		now := time.Now().UTC()
		order.ShippedAt = &now
	}

	updated, err := orderRepo.Update(r.Context(), order)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not update order")
		return
	}
	updated.Items = order.Items

	writeJSON(w, http.StatusOK, updated)
}

func GetExternalOrderHandler(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "externalOrderID")

	order, err := orderRepo.GetByExternalID(r.Context(), externalID)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			errorJSON(w, http.StatusNotFound, "Order not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch order")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func DeleteExternalOrderHandler(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "externalOrderID")

	if err := orderRepo.DeleteByExternalID(r.Context(), externalID); err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			errorJSON(w, http.StatusNotFound, "Order not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

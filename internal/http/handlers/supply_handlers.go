package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
	"github.com/iEkal8fGe/warehouse/internal/repo"
)

// warehouseAccess reports whether the requester may see the given
// warehouse: admins always, employees only their own.
func warehouseAccess(r *http.Request, warehouseID int) (models.User, bool) {
	user, ok := currentUser(r)
	if !ok {
		return models.User{}, false
	}
	if user.Role.IsAdmin() {
		return user, true
	}
	return user, user.WarehouseID != nil && *user.WarehouseID == warehouseID
}

// CreateSupplyHandler posts a supply as a single transaction: the supply,
// its lines, and the inventory increments land together or not at all.
// Only an employee assigned to the target warehouse may post one.
func CreateSupplyHandler(w http.ResponseWriter, r *http.Request) {
	var req SupplyCreateRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if validationErrors := validateSupplyCreate(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	warehouse, err := warehouseRepo.GetByID(r.Context(), req.WarehouseID)
	if err != nil {
		if errors.Is(err, repo.ErrWarehouseNotFound) {
			errorJSON(w, http.StatusNotFound, "Warehouse not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch warehouse")
		return
	}

	user, ok := currentUser(r)
	if !ok || user.WarehouseID == nil || *user.WarehouseID != req.WarehouseID {
		errorJSON(w, http.StatusForbidden, "Not enough permissions")
		return
	}

	for _, item := range req.Items {
		if _, err := productRepo.GetByID(r.Context(), item.ProductID); err != nil {
			errorJSON(w, http.StatusBadRequest, "Unknown product in supply items")
			return
		}
	}

	supply := models.Supply{
		WarehouseID: req.WarehouseID,
		Notes:       req.Notes,
		Items:       make([]models.SupplyItem, len(req.Items)),
	}
	for i, item := range req.Items {
		supply.Items[i] = models.SupplyItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	created, err := supplyRepo.CreateWithItems(r.Context(), supply)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not create supply")
		return
	}

	writeJSON(w, http.StatusCreated, SupplyResponse{Supply: created, WarehouseName: warehouse.Name})
}

func GetSupplyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid supply ID")
		return
	}

	supply, err := supplyRepo.GetWithItems(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrSupplyNotFound) {
			errorJSON(w, http.StatusNotFound, "Supply not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch supply")
		return
	}

	// Non-members get the same 404 as a missing supply.
	if _, ok := warehouseAccess(r, supply.WarehouseID); !ok {
		errorJSON(w, http.StatusNotFound, "Supply not found")
		return
	}

	resp := SupplyResponse{Supply: supply}
	if warehouse, err := warehouseRepo.GetByID(r.Context(), supply.WarehouseID); err == nil {
		resp.WarehouseName = warehouse.Name
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteSupplyHandler removes the supply and rolls its quantities back out
// of inventory.
func DeleteSupplyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid supply ID")
		return
	}

	supply, err := supplyRepo.GetWithItems(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrSupplyNotFound) {
			errorJSON(w, http.StatusNotFound, "Supply not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch supply")
		return
	}

	if _, ok := warehouseAccess(r, supply.WarehouseID); !ok {
		errorJSON(w, http.StatusNotFound, "Supply not found")
		return
	}

	if err := supplyRepo.DeleteWithItems(r.Context(), id); err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not delete supply")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSupplyItemHandler removes a single supply line and rolls its
// quantity back out of inventory. Open to admins and to employees of the
// owning warehouse; everyone else gets the same 404 as a missing line.
func DeleteSupplyItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid supply item ID")
		return
	}

	supply, err := supplyRepo.GetItemSupply(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, repo.ErrSupplyItemNotFound) {
			errorJSON(w, http.StatusNotFound, "Supply item not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch supply item")
		return
	}

	if _, ok := warehouseAccess(r, supply.WarehouseID); !ok {
		errorJSON(w, http.StatusNotFound, "Supply item not found")
		return
	}

	if err := supplyRepo.DeleteItem(r.Context(), itemID); err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not delete supply item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func ListWarehouseSuppliesHandler(w http.ResponseWriter, r *http.Request) {
	warehouseID, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid warehouse ID")
		return
	}
	listSupplies(w, r, warehouseID)
}

func ListMySuppliesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok || user.WarehouseID == nil {
		errorJSON(w, http.StatusNotFound, "You are not assigned to any warehouse")
		return
	}
	listSupplies(w, r, *user.WarehouseID)
}

func listSupplies(w http.ResponseWriter, r *http.Request, warehouseID int) {
	warehouse, err := warehouseRepo.GetByID(r.Context(), warehouseID)
	if err != nil {
		errorJSON(w, http.StatusNotFound, "Warehouse not found")
		return
	}

	if _, ok := warehouseAccess(r, warehouseID); !ok {
		errorJSON(w, http.StatusNotFound, "Warehouse not found")
		return
	}

	page, perPage := pagination(r)
	q := r.URL.Query()

	filter := repo.SupplyFilter{
		Search:   q.Get("search"),
		DateFrom: parseDateParam(q, "date_from"),
		DateTo:   parseDateParam(q, "date_to"),
		Offset:   (page - 1) * perPage,
		Limit:    perPage,
	}
	if v, err := strconv.Atoi(q.Get("product_id")); err == nil && v > 0 {
		filter.ProductID = &v
	}

	supplies, total, err := supplyRepo.ListByWarehouse(r.Context(), warehouseID, filter)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not fetch supplies")
		return
	}

	resp := SupplyList{
		Total:    total,
		Page:     page,
		Pages:    pageCount(total, perPage),
		PerPage:  perPage,
		Supplies: make([]SupplyResponse, len(supplies)),
	}
	for i, s := range supplies {
		resp.Supplies[i] = SupplyResponse{Supply: s, WarehouseName: warehouse.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseDateParam(q url.Values, key string) *time.Time {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}

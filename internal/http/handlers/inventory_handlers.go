package handlers

import (
	"net/http"
	"strconv"

	"github.com/iEkal8fGe/warehouse/internal/repo"
)

const defaultLowStockThreshold = 10

func MyInventoryHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok || user.WarehouseID == nil {
		errorJSON(w, http.StatusNotFound, "You are not assigned to any warehouse")
		return
	}
	listInventory(w, r, *user.WarehouseID)
}

func WarehouseInventoryHandler(w http.ResponseWriter, r *http.Request) {
	warehouseID, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid warehouse ID")
		return
	}

	if _, err := warehouseRepo.GetByID(r.Context(), warehouseID); err != nil {
		errorJSON(w, http.StatusNotFound, "Warehouse not found")
		return
	}
	if _, ok := warehouseAccess(r, warehouseID); !ok {
		errorJSON(w, http.StatusNotFound, "Warehouse not found")
		return
	}

	listInventory(w, r, warehouseID)
}

func listInventory(w http.ResponseWriter, r *http.Request, warehouseID int) {
	page, perPage := pagination(r)
	q := r.URL.Query()

	threshold := defaultLowStockThreshold
	if v, err := strconv.Atoi(q.Get("low_stock_threshold")); err == nil && v >= 0 {
		threshold = v
	}

	filter := repo.InventoryFilter{
		Search:       q.Get("search"),
		InStockOnly:  q.Get("in_stock_only") == "true",
		LowStockOnly: q.Get("low_stock_only") == "true",
		Threshold:    threshold,
		Offset:       (page - 1) * perPage,
		Limit:        perPage,
	}

	items, total, err := inventoryRepo.ListByWarehouse(r.Context(), warehouseID, filter)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not fetch inventory")
		return
	}

	resp := InventoryList{
		Total:   total,
		Page:    page,
		Pages:   pageCount(total, perPage),
		PerPage: perPage,
		Items:   make([]InventoryRowResponse, len(items)),
	}
	for i, row := range items {
		resp.Items[i] = newInventoryRowResponse(row)
	}
	writeJSON(w, http.StatusOK, resp)
}

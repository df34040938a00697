package handlers_test_suite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	api "github.com/iEkal8fGe/warehouse/internal/http"
	handler "github.com/iEkal8fGe/warehouse/internal/http/handlers"
	"github.com/iEkal8fGe/warehouse/internal/models"
)

// seedInventory stocks the main warehouse with one product per on-hand
// quantity and returns the products keyed by name.
func seedInventory(t *testing.T, r http.Handler, quantities map[string]int) map[string]models.Product {
	t.Helper()

	ctx := context.Background()
	products := map[string]models.Product{}
	for name, qty := range quantities {
		p := seedProduct(t, r, name)
		products[name] = p
		if qty > 0 {
			if err := inventoryRepo.Adjust(ctx, mainWarehouseID, p.ID, qty); err != nil {
				t.Fatalf("adjusting inventory: %v", err)
			}
		} else {
			// Touch the row so it exists at quantity zero.
			inventoryRepo.Adjust(ctx, mainWarehouseID, p.ID, 1)
			inventoryRepo.Adjust(ctx, mainWarehouseID, p.ID, -1)
		}
	}
	return products
}

func TestMyInventoryHandler_StatusDerivation(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	seedInventory(t, r, map[string]int{
		"Empty shelf item": 0,
		"Scarce item":      7,
		"Plentiful item":   50,
	})

	w := doJSON(r, http.MethodGet, "/api/v1/inventory/my", nil, employeeToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.InventoryList
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("expected 3 rows, got %d", resp.Total)
	}

	statuses := map[string]models.StockStatus{}
	for _, row := range resp.Items {
		statuses[row.ProductName] = row.Status
	}
	if statuses["Empty shelf item"] != models.StockStatusOut {
		t.Errorf("expected out_of_stock, got %q", statuses["Empty shelf item"])
	}
	if statuses["Scarce item"] != models.StockStatusLow {
		t.Errorf("expected low_stock at 7 with default threshold 10, got %q", statuses["Scarce item"])
	}
	if statuses["Plentiful item"] != models.StockStatusIn {
		t.Errorf("expected in_stock, got %q", statuses["Plentiful item"])
	}
}

func TestMyInventoryHandler_ThresholdParam(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	seedInventory(t, r, map[string]int{"Mid item": 15})

	// With the default threshold of 10 a quantity of 15 is in stock; a
	// custom threshold flips it to low.
	w := doJSON(r, http.MethodGet, "/api/v1/inventory/my?low_stock_threshold=20", nil, employeeToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.InventoryList
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Items) != 1 || resp.Items[0].Status != models.StockStatusLow {
		t.Errorf("expected low_stock with threshold 20, got %+v", resp.Items)
	}
}

func TestMyInventoryHandler_Filters(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	seedInventory(t, r, map[string]int{
		"Drained item": 0,
		"Low item":     3,
		"Full item":    99,
	})

	w := doJSON(r, http.MethodGet, "/api/v1/inventory/my?in_stock_only=true", nil, employeeToken)
	var inStock handler.InventoryList
	json.NewDecoder(w.Body).Decode(&inStock)
	if inStock.Total != 2 {
		t.Errorf("expected 2 rows with stock, got %d", inStock.Total)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/inventory/my?low_stock_only=true", nil, employeeToken)
	var low handler.InventoryList
	json.NewDecoder(w.Body).Decode(&low)
	if low.Total != 1 || low.Items[0].ProductName != "Low item" {
		t.Errorf("expected only the low item, got %+v", low.Items)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/inventory/my?search=full", nil, employeeToken)
	var searched handler.InventoryList
	json.NewDecoder(w.Body).Decode(&searched)
	if searched.Total != 1 || searched.Items[0].ProductName != "Full item" {
		t.Errorf("expected only the full item, got %+v", searched.Items)
	}
}

func TestWarehouseInventoryHandler_NonMember404(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/v1/inventory/warehouse/%d", otherWarehouseID), nil, employeeToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for non-member, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/v1/inventory/warehouse/%d", otherWarehouseID), nil, adminToken)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 OK for admin, got %d", w.Code)
	}
}

func TestMyInventoryHandler_AdminUnassigned404(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/inventory/my", nil, adminToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unassigned user, got %d", w.Code)
	}
	if detail(w) != "You are not assigned to any warehouse" {
		t.Errorf("unexpected detail %q", detail(w))
	}
}

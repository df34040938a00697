package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "github.com/iEkal8fGe/warehouse/internal/http"
	handler "github.com/iEkal8fGe/warehouse/internal/http/handlers"
	"github.com/iEkal8fGe/warehouse/internal/models"
)

// doExternal drives the external sync API with the shared key instead of a
// bearer token.
func doExternal(r http.Handler, method, path string, payload any, key string) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func externalOrderPayload(t *testing.T, r http.Handler, externalID string) handler.ExternalOrderCreateRequest {
	t.Helper()
	p := seedProduct(t, r, "Synced product "+externalID)
	return handler.ExternalOrderCreateRequest{
		ExternalOrderID: externalID,
		WarehouseID:     mainWarehouseID,
		PostalCode:      "60601",
		Country:         "US",
		City:            "Chicago",
		Address:         "12 Canal St",
		Items:           []handler.OrderItemRequest{{ProductID: p.ID, Quantity: 1}},
	}
}

func TestExternalOrderSync_RequiresAPIKey(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	payload := externalOrderPayload(t, r, "shop-1001")

	w := doExternal(r, http.MethodPost, "/api/v1/external/orders/sync", payload, "")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 without key, got %d", w.Code)
	}

	w = doExternal(r, http.MethodPost, "/api/v1/external/orders/sync", payload, "wrong-key")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 with wrong key, got %d", w.Code)
	}

	// A bearer token is no substitute for the key.
	w = doJSON(r, http.MethodPost, "/api/v1/external/orders/sync", payload, adminToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 with bearer token only, got %d", w.Code)
	}
}

func TestExternalOrderSync_CreatesOrder(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	payload := externalOrderPayload(t, r, "shop-1002")

	w := doExternal(r, http.MethodPost, "/api/v1/external/orders/sync", payload, testAPIKey)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := json.NewDecoder(w.Body).Decode(&order); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	expectedPrefix := fmt.Sprintf("ORD-%d-", time.Now().Year())
	if !strings.HasPrefix(order.OrderNumber, expectedPrefix) {
		t.Errorf("expected order number with prefix %q, got %q", expectedPrefix, order.OrderNumber)
	}
	if order.Status != models.OrderStatusNew {
		t.Errorf("expected status new, got %q", order.Status)
	}

	// Re-syncing the same external order is a conflict.
	w = doExternal(r, http.MethodPost, "/api/v1/external/orders/sync", payload, testAPIKey)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 on duplicate sync, got %d", w.Code)
	}
}

func TestExternalOrderSync_UnknownWarehouse(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	payload := externalOrderPayload(t, r, "shop-1003")
	payload.WarehouseID = 99999

	w := doExternal(r, http.MethodPost, "/api/v1/external/orders/sync", payload, testAPIKey)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown warehouse, got %d", w.Code)
	}
}

func TestExternalOrderStatusSync(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	payload := externalOrderPayload(t, r, "shop-1004")
	if w := doExternal(r, http.MethodPost, "/api/v1/external/orders/sync", payload, testAPIKey); w.Code != http.StatusCreated {
		t.Fatalf("seeding order: got %d", w.Code)
	}

	w := doExternal(r, http.MethodPatch, "/api/v1/external/orders/sync-status",
		handler.ExternalOrderStatusUpdate{ExternalOrderID: "shop-1004", StatusCode: models.OrderStatusShipped}, testAPIKey)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Order
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Status != models.OrderStatusShipped {
		t.Errorf("expected status shipped, got %q", updated.Status)
	}
	if updated.ShippedAt == nil {
		t.Error("expected shipped_at set when status becomes shipped")
	}

	w = doExternal(r, http.MethodPatch, "/api/v1/external/orders/sync-status",
		handler.ExternalOrderStatusUpdate{ExternalOrderID: "shop-1004", StatusCode: "bogus"}, testAPIKey)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", w.Code)
	}
}

func TestExternalOrderGetAndDelete(t *testing.T) {
	t.Cleanup(clearCatalogData)
	r := api.NewRouter()

	payload := externalOrderPayload(t, r, "shop-1005")
	if w := doExternal(r, http.MethodPost, "/api/v1/external/orders/sync", payload, testAPIKey); w.Code != http.StatusCreated {
		t.Fatalf("seeding order: got %d", w.Code)
	}

	w := doExternal(r, http.MethodGet, "/api/v1/external/orders/sync/shop-1005", nil, testAPIKey)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	json.NewDecoder(w.Body).Decode(&order)
	if order.ExternalOrderID != "shop-1005" {
		t.Errorf("expected external id shop-1005, got %q", order.ExternalOrderID)
	}

	w = doExternal(r, http.MethodDelete, "/api/v1/external/orders/sync/shop-1005", nil, testAPIKey)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w = doExternal(r, http.MethodGet, "/api/v1/external/orders/sync/shop-1005", nil, testAPIKey)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after deletion, got %d", w.Code)
	}
}

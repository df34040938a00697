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

func orderFilterFromQuery(q url.Values, page, perPage int) (repo.OrderFilter, error) {
	filter := repo.OrderFilter{
		Search:   q.Get("search"),
		DateFrom: parseDateParam(q, "date_from"),
		DateTo:   parseDateParam(q, "date_to"),
		Offset:   (page - 1) * perPage,
		Limit:    perPage,
	}
	if v := q.Get("status_code"); v != "" {
		status := models.OrderStatus(v)
		if !status.Valid() {
			return repo.OrderFilter{}, errors.New("invalid status filter")
		}
		filter.Status = &status
	}
	if v := q.Get("is_shipped"); v != "" {
		shipped := v == "true"
		filter.IsShipped = &shipped
	}
	return filter, nil
}

// ListAllOrdersHandler is the admin view across every warehouse.
func ListAllOrdersHandler(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	q := r.URL.Query()

	filter, err := orderFilterFromQuery(q, page, perPage)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if v, err := strconv.Atoi(q.Get("warehouse_id")); err == nil && v > 0 {
		filter.WarehouseID = &v
	}

	writeOrderList(w, r, filter, page, perPage)
}

func ListMyWarehouseOrdersHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok || user.WarehouseID == nil {
		errorJSON(w, http.StatusNotFound, "You are not assigned to any warehouse")
		return
	}
	listWarehouseOrders(w, r, *user.WarehouseID)
}

func ListWarehouseOrdersHandler(w http.ResponseWriter, r *http.Request) {
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

	listWarehouseOrders(w, r, warehouseID)
}

func listWarehouseOrders(w http.ResponseWriter, r *http.Request, warehouseID int) {
	page, perPage := pagination(r)

	filter, err := orderFilterFromQuery(r.URL.Query(), page, perPage)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	filter.WarehouseID = &warehouseID

	writeOrderList(w, r, filter, page, perPage)
}

func writeOrderList(w http.ResponseWriter, r *http.Request, filter repo.OrderFilter, page, perPage int) {
	orders, total, err := orderRepo.List(r.Context(), filter)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not fetch orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	writeJSON(w, http.StatusOK, OrderList{
		Total:   total,
		Page:    page,
		Pages:   pageCount(total, perPage),
		PerPage: perPage,
		Orders:  orders,
	})
}

func GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := orderRepo.GetWithItems(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			errorJSON(w, http.StatusNotFound, "Order not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch order")
		return
	}

	if _, ok := warehouseAccess(r, order.WarehouseID); !ok {
		errorJSON(w, http.StatusNotFound, "Order not found")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ShipOrderHandler marks an order shipped, once. An optional
// tracking_number query parameter is stored alongside.
func ShipOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := orderRepo.GetWithItems(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			errorJSON(w, http.StatusNotFound, "Order not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch order")
		return
	}

	if _, ok := warehouseAccess(r, order.WarehouseID); !ok {
		errorJSON(w, http.StatusNotFound, "Order not found")
		return
	}

	if order.Status == models.OrderStatusShipped {
		errorJSON(w, http.StatusBadRequest, "Order already shipped")
		return
	}

	if tracking := r.URL.Query().Get("tracking_number"); tracking != "" {
		order.TrackingNumber = tracking
	}
	now := time.Now().UTC()
	order.Status = models.OrderStatusShipped
	order.ShippedAt = &now

	updated, err := orderRepo.Update(r.Context(), order)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not update order")
		return
	}
	updated.Items = order.Items

	writeJSON(w, http.StatusOK, updated)
}

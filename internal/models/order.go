package models

import "time"

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusPicking   OrderStatus = "picking"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusPicking, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              int         `json:"id"`
	OrderNumber     string      `json:"order_number"`
	ExternalOrderID string      `json:"external_order_id,omitempty"`
	WarehouseID     int         `json:"warehouse_id"`
	Status          OrderStatus `json:"status"`
	PostalCode      string      `json:"postal_code"`
	Country         string      `json:"country"`
	City            string      `json:"city"`
	Address         string      `json:"address"`
	Notes           string      `json:"notes,omitempty"`
	TrackingNumber  string      `json:"tracking_number,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       *time.Time  `json:"updated_at,omitempty"`
	ShippedAt       *time.Time  `json:"shipped_at"`
	Items           []OrderItem `json:"items"`
}

type OrderItem struct {
	ID          int    `json:"id"`
	OrderID     int    `json:"order_id"`
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}

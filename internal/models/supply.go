package models

import "time"

// Supply is an inbound stock replenishment. Creating one increments the
// warehouse inventory for each line; deleting one reverses that.
type Supply struct {
	ID           int          `json:"id"`
	SupplyNumber string       `json:"supply_number"`
	WarehouseID  int          `json:"warehouse_id"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	Items        []SupplyItem `json:"items"`
}

type SupplyItem struct {
	ID          int    `json:"id"`
	SupplyID    int    `json:"supply_id"`
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Quantity    int    `json:"quantity"`
}

package models

import "time"

type StockStatus string

const (
	StockStatusOut StockStatus = "out_of_stock"
	StockStatusLow StockStatus = "low_stock"
	StockStatusIn  StockStatus = "in_stock"
)

// StockStatusFor derives exactly one status for any (quantity, threshold)
// pair. Zero quantity wins regardless of the threshold value.
func StockStatusFor(quantity, threshold int) StockStatus {
	switch {
	case quantity == 0:
		return StockStatusOut
	case quantity <= threshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

type InventoryRow struct {
	ID          int        `json:"id"`
	WarehouseID int        `json:"warehouse_id"`
	ProductID   int        `json:"product_id"`
	ProductName string     `json:"product_name,omitempty"`
	SKU         string     `json:"sku,omitempty"`
	Quantity    int        `json:"quantity"`
	Threshold   int        `json:"low_stock_threshold"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (r InventoryRow) Status() StockStatus {
	return StockStatusFor(r.Quantity, r.Threshold)
}

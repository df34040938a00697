package repo

import (
	"context"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type InventoryFilter struct {
	// Search matches the product name and SKU.
	Search       string
	InStockOnly  bool
	LowStockOnly bool
	// Threshold is the low-stock boundary applied to every returned row.
	Threshold int
	Offset    int
	Limit     int
}

type InventoryRepository interface {
	ListByWarehouse(ctx context.Context, warehouseID int, f InventoryFilter) ([]models.InventoryRow, int, error)

	// Adjust adds delta to the on-hand quantity for (warehouse, product),
	// creating the row if needed. Quantity never goes below zero.
	Adjust(ctx context.Context, warehouseID, productID, delta int) error
}

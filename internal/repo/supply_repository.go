package repo

import (
	"context"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type SupplyFilter struct {
	// Search matches the supply number.
	Search    string
	DateFrom  *time.Time
	DateTo    *time.Time
	ProductID *int
	Offset    int
	Limit     int
}

type SupplyRepository interface {
	// CreateWithItems stores the supply and its lines and increments the
	// warehouse inventory for each line, all atomically.
	CreateWithItems(ctx context.Context, s models.Supply) (models.Supply, error)
	GetWithItems(ctx context.Context, id int) (models.Supply, error)

	// DeleteWithItems removes the supply and decrements inventory for each
	// line, flooring quantities at zero.
	DeleteWithItems(ctx context.Context, id int) error

	// GetItemSupply returns the supply owning the given line.
	GetItemSupply(ctx context.Context, itemID int) (models.Supply, error)

	// DeleteItem removes a single line and decrements inventory for it,
	// floored at zero.
	DeleteItem(ctx context.Context, itemID int) error
	ListByWarehouse(ctx context.Context, warehouseID int, f SupplyFilter) ([]models.Supply, int, error)
}

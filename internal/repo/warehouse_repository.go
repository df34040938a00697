package repo

import (
	"context"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type WarehouseFilter struct {
	Search     string
	ActiveOnly bool
	Offset     int
	Limit      int
}

type WarehouseRepository interface {
	Create(ctx context.Context, w models.Warehouse) (models.Warehouse, error)
	GetByID(ctx context.Context, id int) (models.Warehouse, error)
	Update(ctx context.Context, w models.Warehouse) (models.Warehouse, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, f WarehouseFilter) ([]models.Warehouse, int, error)
}

package repo

import (
	"context"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type ProductFilter struct {
	// Search matches product name and SKU case-insensitively.
	Search     string
	ActiveOnly bool
	Offset     int
	Limit      int
}

type ProductRepository interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	Update(ctx context.Context, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, f ProductFilter) ([]models.Product, int, error)

	// NextSKU reserves the next SKU in the SKU-YYYY-NNNNN sequence.
	NextSKU(ctx context.Context) (string, error)
}

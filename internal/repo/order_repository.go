package repo

import (
	"context"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type OrderFilter struct {
	// Search matches order number, external order id, and shipping address.
	Search      string
	Status      *models.OrderStatus
	WarehouseID *int
	DateFrom    *time.Time
	DateTo      *time.Time
	IsShipped   *bool
	Offset      int
	Limit       int
}

type OrderRepository interface {
	// Create stores the order and its items; the ORD-YYYY-NNNNN number is
	// generated when not supplied.
	Create(ctx context.Context, o models.Order) (models.Order, error)
	GetWithItems(ctx context.Context, id int) (models.Order, error)
	GetByExternalID(ctx context.Context, externalID string) (models.Order, error)

	// Update persists the mutable fields: status, tracking number, notes,
	// shipped_at.
	Update(ctx context.Context, o models.Order) (models.Order, error)
	DeleteByExternalID(ctx context.Context, externalID string) error
	List(ctx context.Context, f OrderFilter) ([]models.Order, int, error)
}

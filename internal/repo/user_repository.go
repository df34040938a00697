package repo

import (
	"context"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type UserFilter struct {
	Search     string
	Role       *models.Role
	ActiveOnly bool
	Offset     int
	Limit      int
}

type UserRepository interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id int) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, f UserFilter) ([]models.User, int, error)
	ListByWarehouse(ctx context.Context, warehouseID int) ([]models.User, error)
}

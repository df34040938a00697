package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Role        models.Role `json:"role"`
}

type UserResponse struct {
	ID          int         `json:"id"`
	Username    string      `json:"username"`
	Role        models.Role `json:"role"`
	IsSuperuser bool        `json:"is_superuser"`
	IsActive    bool        `json:"is_active"`
	WarehouseID *int        `json:"warehouse_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		IsSuperuser: u.Role.IsAdmin(),
		IsActive:    u.IsActive,
		WarehouseID: u.WarehouseID,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type UserCreateRequest struct {
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	Role        models.Role `json:"role"`
	IsActive    *bool       `json:"is_active,omitempty"`
	WarehouseID *int        `json:"warehouse_id,omitempty"`
}

// UserUpdateRequest carries only the changed fields; a nil pointer means
// "leave as is". The password is applied only when non-empty.
type UserUpdateRequest struct {
	Username    *string      `json:"username,omitempty"`
	Password    *string      `json:"password,omitempty"`
	Role        *models.Role `json:"role,omitempty"`
	IsActive    *bool        `json:"is_active,omitempty"`
	WarehouseID *int         `json:"warehouse_id,omitempty"`
}

type UserList struct {
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
	PerPage int            `json:"per_page"`
	Users   []UserResponse `json:"users"`
}

type WarehouseRequest struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	City        string `json:"city"`
	IsActive    *bool  `json:"is_active,omitempty"`
	Description string `json:"description,omitempty"`
}

type WarehouseUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	State       *string `json:"state,omitempty"`
	City        *string `json:"city,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	Description *string `json:"description,omitempty"`
}

type WarehouseResponse struct {
	models.Warehouse
	Users []UserResponse `json:"users,omitempty"`
}

type WarehouseList struct {
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Pages      int                `json:"pages"`
	PerPage    int                `json:"per_page"`
	Warehouses []models.Warehouse `json:"warehouses"`
}

type ProductCreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

// ProductUpdateRequest has no SKU field: SKUs are immutable.
type ProductUpdateRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type ProductList struct {
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	PerPage  int              `json:"per_page"`
	Products []models.Product `json:"products"`
}

type OrderList struct {
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
	PerPage int            `json:"per_page"`
	Orders  []models.Order `json:"orders"`
}

type OrderItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type ExternalOrderCreateRequest struct {
	ExternalOrderID string             `json:"external_order_id"`
	WarehouseID     int                `json:"warehouse_id"`
	PostalCode      string             `json:"postal_code"`
	Country         string             `json:"country"`
	City            string             `json:"city"`
	Address         string             `json:"address"`
	Notes           string             `json:"notes,omitempty"`
	Items           []OrderItemRequest `json:"items"`
}

type ExternalOrderStatusUpdate struct {
	ExternalOrderID string             `json:"external_order_id"`
	StatusCode      models.OrderStatus `json:"status_code"`
}

type SupplyItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type SupplyCreateRequest struct {
	WarehouseID int                 `json:"warehouse_id"`
	Notes       string              `json:"notes,omitempty"`
	Items       []SupplyItemRequest `json:"items"`
}

type SupplyResponse struct {
	models.Supply
	WarehouseName string `json:"warehouse_name,omitempty"`
}

type SupplyList struct {
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	PerPage  int              `json:"per_page"`
	Supplies []SupplyResponse `json:"supplies"`
}

type InventoryRowResponse struct {
	models.InventoryRow
	Status models.StockStatus `json:"status"`
}

func newInventoryRowResponse(row models.InventoryRow) InventoryRowResponse {
	return InventoryRowResponse{InventoryRow: row, Status: row.Status()}
}

type InventoryList struct {
	Total   int                    `json:"total"`
	Page    int                    `json:"page"`
	Pages   int                    `json:"pages"`
	PerPage int                    `json:"per_page"`
	Items   []InventoryRowResponse `json:"items"`
}

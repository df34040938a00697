package repo

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrWarehouseNotFound  = errors.New("warehouse not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrSupplyNotFound     = errors.New("supply not found")
	ErrSupplyItemNotFound = errors.New("supply item not found")

	// ErrDuplicatedValueUnique is returned when an insert or update violates
	// a unique constraint (usernames, SKUs, order numbers).
	ErrDuplicatedValueUnique = errors.New("duplicated value violates unique constraint")
)

package handlers

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateUserCreate(req UserCreateRequest) []ValidationError {
	errs := []ValidationError{}
	if len(strings.TrimSpace(req.Username)) < 3 {
		errs = append(errs, ValidationError{Field: "username", Description: "Username must be at least 3 characters"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, ValidationError{Field: "password", Description: "Password must be at least 6 characters"})
	}
	if !req.Role.Valid() {
		errs = append(errs, ValidationError{Field: "role", Description: "Role must be admin or employee"})
	}
	return errs
}

func validateWarehouse(req WarehouseRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Description: "Name is required"})
	}
	if strings.TrimSpace(req.State) == "" {
		errs = append(errs, ValidationError{Field: "state", Description: "State is required"})
	}
	return errs
}

func validateProductCreate(req ProductCreateRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Description: "Name is required"})
	}
	if req.CostPrice.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, ValidationError{Field: "cost_price", Description: "Cost price must be greater than zero"})
	}
	return errs
}

func validateSupplyCreate(req SupplyCreateRequest) []ValidationError {
	errs := []ValidationError{}
	if req.WarehouseID <= 0 {
		errs = append(errs, ValidationError{Field: "warehouse_id", Description: "Warehouse is required"})
	}
	if len(req.Items) == 0 {
		errs = append(errs, ValidationError{Field: "items", Description: "At least one item is required"})
	}
	for _, item := range req.Items {
		if item.ProductID <= 0 {
			errs = append(errs, ValidationError{Field: "items", Description: "Product is required for every item"})
			break
		}
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			errs = append(errs, ValidationError{Field: "items", Description: "Quantity must be at least 1"})
			break
		}
	}
	return errs
}

func validateExternalOrder(req ExternalOrderCreateRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(req.ExternalOrderID) == "" {
		errs = append(errs, ValidationError{Field: "external_order_id", Description: "External order id is required"})
	}
	if req.WarehouseID <= 0 {
		errs = append(errs, ValidationError{Field: "warehouse_id", Description: "Warehouse is required"})
	}
	for _, field := range []struct{ name, value string }{
		{"postal_code", req.PostalCode},
		{"country", req.Country},
		{"city", req.City},
		{"address", req.Address},
	} {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, ValidationError{Field: field.name, Description: "Field is required"})
		}
	}
	if len(req.Items) == 0 {
		errs = append(errs, ValidationError{Field: "items", Description: "At least one item is required"})
	}
	for _, item := range req.Items {
		if item.ProductID <= 0 || item.Quantity < 1 {
			errs = append(errs, ValidationError{Field: "items", Description: "Every item needs a product and a positive quantity"})
			break
		}
	}
	return errs
}

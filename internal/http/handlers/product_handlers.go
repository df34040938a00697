package handlers

import (
	"errors"
	"net/http"

	"github.com/iEkal8fGe/warehouse/internal/models"
	"github.com/iEkal8fGe/warehouse/internal/repo"
)

// CreateProductHandler assigns the SKU server-side; clients never pick one.
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductCreateRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if validationErrors := validateProductCreate(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	sku, err := productRepo.NextSKU(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not generate SKU")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := models.Product{
		Name:        req.Name,
		SKU:         sku,
		Description: req.Description,
		CostPrice:   req.CostPrice,
		IsActive:    isActive,
	}

	created, err := productRepo.Create(r.Context(), product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			errorJSON(w, http.StatusConflict, "SKU already exists")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not create product")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			errorJSON(w, http.StatusNotFound, "Product not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ListProductsHandler searches name and SKU case-insensitively.
func ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	q := r.URL.Query()

	filter := repo.ProductFilter{
		Search:     q.Get("search"),
		ActiveOnly: q.Get("active_only") == "true",
		Offset:     (page - 1) * perPage,
		Limit:      perPage,
	}

	products, total, err := productRepo.List(r.Context(), filter)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Could not fetch products")
		return
	}

	writeJSON(w, http.StatusOK, ProductList{
		Total:    total,
		Page:     page,
		Pages:    pageCount(total, perPage),
		PerPage:  perPage,
		Products: products,
	})
}

// UpdateProductHandler is a partial update; the SKU cannot be changed.
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req ProductUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid input")
		return
	}

	product, err := productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			errorJSON(w, http.StatusNotFound, "Product not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not fetch product")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			writeJSON(w, http.StatusBadRequest, []ValidationError{
				{Field: "name", Description: "Name is required"},
			})
			return
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() || req.CostPrice.IsZero() {
			writeJSON(w, http.StatusBadRequest, []ValidationError{
				{Field: "cost_price", Description: "Cost price must be greater than zero"},
			})
			return
		}
		product.CostPrice = *req.CostPrice
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	updated, err := productRepo.Update(r.Context(), product)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			errorJSON(w, http.StatusNotFound, "Product not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not update product")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := productRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			errorJSON(w, http.StatusNotFound, "Product not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Could not delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

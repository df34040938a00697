package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type inventoryKey struct {
	warehouseID int
	productID   int
}

type InMemoryInventoryRepository struct {
	mu     sync.Mutex
	rows   map[inventoryKey]*models.InventoryRow
	nextID int

	// products supplies names and SKUs for listing and search.
	products *InMemoryProductRepository
}

func NewInMemoryInventoryRepository() *InMemoryInventoryRepository {
	return &InMemoryInventoryRepository{rows: map[inventoryKey]*models.InventoryRow{}, nextID: 1}
}

func (r *InMemoryInventoryRepository) SetProductRepository(products *InMemoryProductRepository) {
	r.products = products
}

func (r *InMemoryInventoryRepository) ListByWarehouse(ctx context.Context, warehouseID int, f InventoryFilter) ([]models.InventoryRow, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.InventoryRow
	for key, row := range r.rows {
		if key.warehouseID != warehouseID {
			continue
		}
		item := *row
		item.Threshold = f.Threshold
		if r.products != nil {
			if p, err := r.products.GetByID(ctx, item.ProductID); err == nil {
				item.ProductName = p.Name
				item.SKU = p.SKU
			}
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(item.ProductName), s) &&
				!strings.Contains(strings.ToLower(item.SKU), s) {
				continue
			}
		}
		if f.InStockOnly && item.Quantity == 0 {
			continue
		}
		if f.LowStockOnly && item.Status() != models.StockStatusLow {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ProductName < matched[j].ProductName })

	total := len(matched)
	matched = paginate(matched, f.Offset, f.Limit)
	return matched, total, nil
}

func (r *InMemoryInventoryRepository) Adjust(_ context.Context, warehouseID, productID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := inventoryKey{warehouseID, productID}
	now := time.Now().UTC()
	row, ok := r.rows[key]
	if !ok {
		row = &models.InventoryRow{
			ID:          r.nextID,
			WarehouseID: warehouseID,
			ProductID:   productID,
		}
		r.nextID++
		r.rows[key] = row
	}
	row.Quantity += delta
	if row.Quantity < 0 {
		row.Quantity = 0
	}
	row.UpdatedAt = &now
	return nil
}

// Quantity reports the on-hand amount for assertions in tests.
func (r *InMemoryInventoryRepository) Quantity(warehouseID, productID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[inventoryKey{warehouseID, productID}]; ok {
		return row.Quantity
	}
	return 0
}

func (r *InMemoryInventoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = map[inventoryKey]*models.InventoryRow{}
	r.nextID = 1
}

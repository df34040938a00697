package repo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type InMemorySupplyRepository struct {
	mu       sync.Mutex
	supplies map[int]models.Supply
	nextID   int
	seq      int
	itemSeq  int

	inventory *InMemoryInventoryRepository
	products  *InMemoryProductRepository
}

func NewInMemorySupplyRepository() *InMemorySupplyRepository {
	return &InMemorySupplyRepository{supplies: map[int]models.Supply{}, nextID: 1}
}

// SetRepositories links the inventory and product stores the supply
// lifecycle touches.
func (r *InMemorySupplyRepository) SetRepositories(inventory *InMemoryInventoryRepository, products *InMemoryProductRepository) {
	r.inventory = inventory
	r.products = products
}

func (r *InMemorySupplyRepository) CreateWithItems(ctx context.Context, s models.Supply) (models.Supply, error) {
	r.mu.Lock()
	s.ID = r.nextID
	r.nextID++
	r.seq++
	s.SupplyNumber = fmt.Sprintf("SUP-%d-%05d", time.Now().Year(), r.seq)
	s.CreatedAt = time.Now().UTC()
	for i := range s.Items {
		r.itemSeq++
		s.Items[i].ID = r.itemSeq
		s.Items[i].SupplyID = s.ID
	}
	r.supplies[s.ID] = s
	r.mu.Unlock()

	for _, item := range s.Items {
		if err := r.inventory.Adjust(ctx, s.WarehouseID, item.ProductID, item.Quantity); err != nil {
			return models.Supply{}, err
		}
	}
	return r.GetWithItems(ctx, s.ID)
}

func (r *InMemorySupplyRepository) GetWithItems(ctx context.Context, id int) (models.Supply, error) {
	r.mu.Lock()
	s, ok := r.supplies[id]
	r.mu.Unlock()
	if !ok {
		return models.Supply{}, ErrSupplyNotFound
	}
	return r.withProductInfo(ctx, s), nil
}

func (r *InMemorySupplyRepository) withProductInfo(ctx context.Context, s models.Supply) models.Supply {
	items := make([]models.SupplyItem, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		if r.products == nil {
			break
		}
		if p, err := r.products.GetByID(ctx, items[i].ProductID); err == nil {
			items[i].ProductName = p.Name
			items[i].SKU = p.SKU
		}
	}
	s.Items = items
	return s
}

func (r *InMemorySupplyRepository) DeleteWithItems(ctx context.Context, id int) error {
	r.mu.Lock()
	s, ok := r.supplies[id]
	if !ok {
		r.mu.Unlock()
		return ErrSupplyNotFound
	}
	delete(r.supplies, id)
	r.mu.Unlock()

	for _, item := range s.Items {
		if err := r.inventory.Adjust(ctx, s.WarehouseID, item.ProductID, -item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (r *InMemorySupplyRepository) GetItemSupply(ctx context.Context, itemID int) (models.Supply, error) {
	r.mu.Lock()
	for _, s := range r.supplies {
		for _, item := range s.Items {
			if item.ID == itemID {
				r.mu.Unlock()
				return r.GetWithItems(ctx, s.ID)
			}
		}
	}
	r.mu.Unlock()
	return models.Supply{}, ErrSupplyItemNotFound
}

func (r *InMemorySupplyRepository) DeleteItem(ctx context.Context, itemID int) error {
	r.mu.Lock()
	for id, s := range r.supplies {
		for i, item := range s.Items {
			if item.ID != itemID {
				continue
			}
			remaining := make([]models.SupplyItem, 0, len(s.Items)-1)
			remaining = append(remaining, s.Items[:i]...)
			remaining = append(remaining, s.Items[i+1:]...)
			s.Items = remaining
			r.supplies[id] = s
			r.mu.Unlock()
			return r.inventory.Adjust(ctx, s.WarehouseID, item.ProductID, -item.Quantity)
		}
	}
	r.mu.Unlock()
	return ErrSupplyItemNotFound
}

func (r *InMemorySupplyRepository) ListByWarehouse(ctx context.Context, warehouseID int, f SupplyFilter) ([]models.Supply, int, error) {
	r.mu.Lock()
	var matched []models.Supply
	for _, s := range r.supplies {
		if s.WarehouseID != warehouseID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(s.SupplyNumber), strings.ToLower(f.Search)) {
			continue
		}
		if f.DateFrom != nil && s.CreatedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && s.CreatedAt.After(f.DateTo.Add(24*time.Hour)) {
			continue
		}
		if f.ProductID != nil {
			found := false
			for _, item := range s.Items {
				if item.ProductID == *f.ProductID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, s)
	}
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	matched = paginate(matched, f.Offset, f.Limit)
	for i := range matched {
		matched[i] = r.withProductInfo(ctx, matched[i])
	}
	return matched, total, nil
}

func (r *InMemorySupplyRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supplies = map[int]models.Supply{}
	r.nextID = 1
	r.seq = 0
	r.itemSeq = 0
}

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

type InMemoryOrderRepository struct {
	mu     sync.Mutex
	orders map[int]models.Order
	nextID int
	seq    int

	products *InMemoryProductRepository
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{orders: map[int]models.Order{}, nextID: 1}
}

func (r *InMemoryOrderRepository) SetProductRepository(products *InMemoryProductRepository) {
	r.products = products
}

func (r *InMemoryOrderRepository) Create(_ context.Context, o models.Order) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ExternalOrderID != "" {
		for _, existing := range r.orders {
			if existing.ExternalOrderID == o.ExternalOrderID {
				return models.Order{}, ErrDuplicatedValueUnique
			}
		}
	}

	o.ID = r.nextID
	r.nextID++
	if o.OrderNumber == "" {
		r.seq++
		o.OrderNumber = fmt.Sprintf("ORD-%d-%05d", time.Now().Year(), r.seq)
	}
	if o.Status == "" {
		o.Status = models.OrderStatusNew
	}
	o.CreatedAt = time.Now().UTC()
	for i := range o.Items {
		o.Items[i].ID = i + 1
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = o
	return o, nil
}

func (r *InMemoryOrderRepository) GetWithItems(ctx context.Context, id int) (models.Order, error) {
	r.mu.Lock()
	o, ok := r.orders[id]
	r.mu.Unlock()
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return r.withProductNames(ctx, o), nil
}

func (r *InMemoryOrderRepository) GetByExternalID(ctx context.Context, externalID string) (models.Order, error) {
	r.mu.Lock()
	for _, o := range r.orders {
		if o.ExternalOrderID == externalID {
			r.mu.Unlock()
			return r.withProductNames(ctx, o), nil
		}
	}
	r.mu.Unlock()
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) withProductNames(ctx context.Context, o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	for i := range items {
		if r.products == nil {
			break
		}
		if p, err := r.products.GetByID(ctx, items[i].ProductID); err == nil {
			items[i].ProductName = p.Name
		}
	}
	o.Items = items
	return o
}

func (r *InMemoryOrderRepository) Update(_ context.Context, o models.Order) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[o.ID]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	existing.Status = o.Status
	existing.TrackingNumber = o.TrackingNumber
	existing.Notes = o.Notes
	existing.ShippedAt = o.ShippedAt
	now := time.Now().UTC()
	existing.UpdatedAt = &now
	r.orders[o.ID] = existing
	return existing, nil
}

func (r *InMemoryOrderRepository) DeleteByExternalID(_ context.Context, externalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, o := range r.orders {
		if o.ExternalOrderID == externalID {
			delete(r.orders, id)
			return nil
		}
	}
	return ErrOrderNotFound
}

func (r *InMemoryOrderRepository) List(ctx context.Context, f OrderFilter) ([]models.Order, int, error) {
	r.mu.Lock()
	var matched []models.Order
	for _, o := range r.orders {
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(o.OrderNumber), s) &&
				!strings.Contains(strings.ToLower(o.ExternalOrderID), s) &&
				!strings.Contains(strings.ToLower(o.City), s) &&
				!strings.Contains(strings.ToLower(o.Address), s) {
				continue
			}
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.WarehouseID != nil && o.WarehouseID != *f.WarehouseID {
			continue
		}
		if f.DateFrom != nil && o.CreatedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && o.CreatedAt.After(f.DateTo.Add(24*time.Hour)) {
			continue
		}
		if f.IsShipped != nil && (o.ShippedAt != nil) != *f.IsShipped {
			continue
		}
		matched = append(matched, o)
	}
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	matched = paginate(matched, f.Offset, f.Limit)
	for i := range matched {
		matched[i] = r.withProductNames(ctx, matched[i])
	}
	return matched, total, nil
}

func (r *InMemoryOrderRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = map[int]models.Order{}
	r.nextID = 1
	r.seq = 0
}

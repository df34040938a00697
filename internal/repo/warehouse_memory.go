package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type InMemoryWarehouseRepository struct {
	mu         sync.Mutex
	warehouses map[int]models.Warehouse
	nextID     int
}

func NewInMemoryWarehouseRepository() *InMemoryWarehouseRepository {
	return &InMemoryWarehouseRepository{warehouses: map[int]models.Warehouse{}, nextID: 1}
}

func (r *InMemoryWarehouseRepository) Create(_ context.Context, w models.Warehouse) (models.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = r.nextID
	r.nextID++
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	r.warehouses[w.ID] = w
	return w, nil
}

func (r *InMemoryWarehouseRepository) GetByID(_ context.Context, id int) (models.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.warehouses[id]
	if !ok {
		return models.Warehouse{}, ErrWarehouseNotFound
	}
	return w, nil
}

func (r *InMemoryWarehouseRepository) Update(_ context.Context, w models.Warehouse) (models.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.warehouses[w.ID]; !ok {
		return models.Warehouse{}, ErrWarehouseNotFound
	}
	now := time.Now().UTC()
	w.UpdatedAt = &now
	r.warehouses[w.ID] = w
	return w, nil
}

func (r *InMemoryWarehouseRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.warehouses[id]; !ok {
		return ErrWarehouseNotFound
	}
	delete(r.warehouses, id)
	return nil
}

func (r *InMemoryWarehouseRepository) List(_ context.Context, f WarehouseFilter) ([]models.Warehouse, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Warehouse
	for _, w := range r.warehouses {
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(w.Name), s) &&
				!strings.Contains(strings.ToLower(w.City), s) &&
				!strings.Contains(strings.ToLower(w.State), s) {
				continue
			}
		}
		if f.ActiveOnly && !w.IsActive {
			continue
		}
		matched = append(matched, w)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	matched = paginate(matched, f.Offset, f.Limit)
	return matched, total, nil
}

func (r *InMemoryWarehouseRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warehouses = map[int]models.Warehouse{}
	r.nextID = 1
}

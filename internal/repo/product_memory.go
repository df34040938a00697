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

type InMemoryProductRepository struct {
	mu       sync.Mutex
	products map[int]models.Product
	nextID   int
	skuSeq   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{products: map[int]models.Product{}, nextID: 1}
}

func (r *InMemoryProductRepository) Create(_ context.Context, p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	p.ID = r.nextID
	r.nextID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *InMemoryProductRepository) Update(_ context.Context, p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	// SKU is immutable once assigned.
	p.SKU = existing.SKU
	now := time.Now().UTC()
	p.UpdatedAt = &now
	r.products[p.ID] = p
	return p, nil
}

func (r *InMemoryProductRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *InMemoryProductRepository) List(_ context.Context, f ProductFilter) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Product
	for _, p := range r.products {
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), s) &&
				!strings.Contains(strings.ToLower(p.SKU), s) {
				continue
			}
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	matched = paginate(matched, f.Offset, f.Limit)
	return matched, total, nil
}

func (r *InMemoryProductRepository) NextSKU(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skuSeq++
	return fmt.Sprintf("SKU-%d-%05d", time.Now().Year(), r.skuSeq), nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = map[int]models.Product{}
	r.nextID = 1
	r.skuSeq = 0
}

package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

// InMemoryUserRepository backs the handler test suite.
type InMemoryUserRepository struct {
	mu     sync.Mutex
	users  map[int]models.User
	nextID int
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: map[int]models.User{}, nextID: 1}
}

func (r *InMemoryUserRepository) Create(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}
	u.ID = r.nextID
	r.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *InMemoryUserRepository) GetByID(_ context.Context, id int) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) Update(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return models.User{}, ErrUserNotFound
	}
	for _, existing := range r.users {
		if existing.ID != u.ID && existing.Username == u.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}
	now := time.Now().UTC()
	u.UpdatedAt = &now
	r.users[u.ID] = u
	return u, nil
}

func (r *InMemoryUserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *InMemoryUserRepository) List(_ context.Context, f UserFilter) ([]models.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.User
	for _, u := range r.users {
		if f.Search != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(f.Search)) {
			continue
		}
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		if f.ActiveOnly && !u.IsActive {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	matched = paginate(matched, f.Offset, f.Limit)
	return matched, total, nil
}

func (r *InMemoryUserRepository) ListByWarehouse(_ context.Context, warehouseID int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []models.User
	for _, u := range r.users {
		if u.WarehouseID != nil && *u.WarehouseID == warehouseID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *InMemoryUserRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = map[int]models.User{}
	r.nextID = 1
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

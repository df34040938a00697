package models

import "time"

type Warehouse struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	State       string     `json:"state"`
	City        string     `json:"city"`
	IsActive    bool       `json:"is_active"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

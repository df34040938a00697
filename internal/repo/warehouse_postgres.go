package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type PostgresWarehouseRepository struct {
	db *sql.DB
}

func NewPostgresWarehouseRepository(db *sql.DB) *PostgresWarehouseRepository {
	return &PostgresWarehouseRepository{db: db}
}

const warehouseColumns = `id, name, state, city, is_active, description, created_at, updated_at`

func scanWarehouse(row interface{ Scan(...any) error }) (models.Warehouse, error) {
	var w models.Warehouse
	var description sql.NullString
	err := row.Scan(&w.ID, &w.Name, &w.State, &w.City, &w.IsActive,
		&description, &w.CreatedAt, &w.UpdatedAt)
	w.Description = description.String
	return w, err
}

func (r *PostgresWarehouseRepository) Create(ctx context.Context, w models.Warehouse) (models.Warehouse, error) {
	query := `INSERT INTO warehouses (name, state, city, is_active, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	w.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, w.Name, w.State, w.City, w.IsActive,
		w.Description, w.CreatedAt).Scan(&w.ID)
	if err != nil {
		return models.Warehouse{}, err
	}
	return w, nil
}

func (r *PostgresWarehouseRepository) GetByID(ctx context.Context, id int) (models.Warehouse, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	w, err := scanWarehouse(r.db.QueryRowContext(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Warehouse{}, ErrWarehouseNotFound
	}
	return w, err
}

func (r *PostgresWarehouseRepository) Update(ctx context.Context, w models.Warehouse) (models.Warehouse, error) {
	query := `UPDATE warehouses SET name = $1, state = $2, city = $3, is_active = $4,
		description = $5, updated_at = $6 WHERE id = $7`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, w.Name, w.State, w.City, w.IsActive,
		w.Description, now, w.ID)
	if err != nil {
		return models.Warehouse{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Warehouse{}, ErrWarehouseNotFound
	}
	w.UpdatedAt = &now
	return w, nil
}

func (r *PostgresWarehouseRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrWarehouseNotFound
	}
	return nil
}

func (r *PostgresWarehouseRepository) List(ctx context.Context, f WarehouseFilter) ([]models.Warehouse, int, error) {
	conditions := ""
	args := []any{}
	argIdx := 1

	if f.Search != "" {
		conditions += fmt.Sprintf(" AND (name ILIKE $%d OR city ILIKE $%d OR state ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}
	if f.ActiveOnly {
		conditions += " AND is_active"
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM warehouses WHERE 1=1`+conditions, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE 1=1` + conditions + ` ORDER BY id`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, f.Limit)
		argIdx++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var warehouses []models.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, 0, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, total, rows.Err()
}

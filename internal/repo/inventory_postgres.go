package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type PostgresInventoryRepository struct {
	db *sql.DB
}

func NewPostgresInventoryRepository(db *sql.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

func (r *PostgresInventoryRepository) ListByWarehouse(ctx context.Context, warehouseID int, f InventoryFilter) ([]models.InventoryRow, int, error) {
	conditions := " AND i.warehouse_id = $1"
	args := []any{warehouseID}
	argIdx := 2

	if f.Search != "" {
		conditions += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.sku ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}
	if f.InStockOnly {
		conditions += " AND i.quantity > 0"
	}
	if f.LowStockOnly {
		conditions += fmt.Sprintf(" AND i.quantity > 0 AND i.quantity <= $%d", argIdx)
		args = append(args, f.Threshold)
		argIdx++
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	countQuery := `SELECT COUNT(*) FROM inventory i JOIN products p ON p.id = i.product_id WHERE 1=1` + conditions
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT i.id, i.warehouse_id, i.product_id, p.name, p.sku, i.quantity, i.updated_at
		FROM inventory i JOIN products p ON p.id = i.product_id WHERE 1=1` + conditions + ` ORDER BY p.name`
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

	var items []models.InventoryRow
	for rows.Next() {
		var row models.InventoryRow
		if err := rows.Scan(&row.ID, &row.WarehouseID, &row.ProductID, &row.ProductName,
			&row.SKU, &row.Quantity, &row.UpdatedAt); err != nil {
			return nil, 0, err
		}
		row.Threshold = f.Threshold
		items = append(items, row)
	}
	return items, total, rows.Err()
}

func (r *PostgresInventoryRepository) Adjust(ctx context.Context, warehouseID, productID, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, adjustInventoryQuery, warehouseID, productID, delta, time.Now().UTC())
	return err
}

// Shared with the supply repository, which runs it inside its transaction.
const adjustInventoryQuery = `
	INSERT INTO inventory (warehouse_id, product_id, quantity, updated_at)
	VALUES ($1, $2, GREATEST($3, 0), $4)
	ON CONFLICT (warehouse_id, product_id)
	DO UPDATE SET quantity = GREATEST(inventory.quantity + $3, 0), updated_at = $4`

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type PostgresSupplyRepository struct {
	db *sql.DB
}

func NewPostgresSupplyRepository(db *sql.DB) *PostgresSupplyRepository {
	return &PostgresSupplyRepository{db: db}
}

func (r *PostgresSupplyRepository) nextSupplyNumber(ctx context.Context, tx *sql.Tx) (string, error) {
	year := time.Now().Year()
	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM supplies WHERE EXTRACT(YEAR FROM created_at) = $1`, year).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SUP-%d-%05d", year, count+1), nil
}

func (r *PostgresSupplyRepository) CreateWithItems(ctx context.Context, s models.Supply) (models.Supply, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Supply{}, err
	}
	defer tx.Rollback()

	s.SupplyNumber, err = r.nextSupplyNumber(ctx, tx)
	if err != nil {
		return models.Supply{}, err
	}
	s.CreatedAt = time.Now().UTC()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO supplies (supply_number, warehouse_id, notes, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		s.SupplyNumber, s.WarehouseID, s.Notes, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return models.Supply{}, err
	}

	for i := range s.Items {
		item := &s.Items[i]
		item.SupplyID = s.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO supply_items (supply_id, product_id, quantity, created_at)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			s.ID, item.ProductID, item.Quantity, s.CreatedAt).Scan(&item.ID)
		if err != nil {
			return models.Supply{}, err
		}

		if _, err := tx.ExecContext(ctx, adjustInventoryQuery,
			s.WarehouseID, item.ProductID, item.Quantity, s.CreatedAt); err != nil {
			return models.Supply{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Supply{}, err
	}
	return s, nil
}

func (r *PostgresSupplyRepository) GetWithItems(ctx context.Context, id int) (models.Supply, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s models.Supply
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, supply_number, warehouse_id, notes, created_at FROM supplies WHERE id = $1`, id).
		Scan(&s.ID, &s.SupplyNumber, &s.WarehouseID, &notes, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Supply{}, ErrSupplyNotFound
	}
	if err != nil {
		return models.Supply{}, err
	}
	s.Notes = notes.String

	s.Items, err = r.itemsOf(ctx, s.ID)
	return s, err
}

func (r *PostgresSupplyRepository) itemsOf(ctx context.Context, supplyID int) ([]models.SupplyItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT si.id, si.supply_id, si.product_id, p.name, p.sku, si.quantity
		 FROM supply_items si JOIN products p ON p.id = si.product_id
		 WHERE si.supply_id = $1 ORDER BY si.id`, supplyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.SupplyItem
	for rows.Next() {
		var item models.SupplyItem
		if err := rows.Scan(&item.ID, &item.SupplyID, &item.ProductID,
			&item.ProductName, &item.SKU, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresSupplyRepository) DeleteWithItems(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var warehouseID int
	err = tx.QueryRowContext(ctx, `SELECT warehouse_id FROM supplies WHERE id = $1`, id).Scan(&warehouseID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSupplyNotFound
	}
	if err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM supply_items WHERE supply_id = $1`, id)
	if err != nil {
		return err
	}
	type line struct{ productID, quantity int }
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			rows.Close()
			return err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, l := range lines {
		if _, err := tx.ExecContext(ctx, adjustInventoryQuery,
			warehouseID, l.productID, -l.quantity, now); err != nil {
			return err
		}
	}

	// supply_items rows go with the supply via ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM supplies WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresSupplyRepository) GetItemSupply(ctx context.Context, itemID int) (models.Supply, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var supplyID int
	err := r.db.QueryRowContext(ctx,
		`SELECT supply_id FROM supply_items WHERE id = $1`, itemID).Scan(&supplyID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Supply{}, ErrSupplyItemNotFound
	}
	if err != nil {
		return models.Supply{}, err
	}
	return r.GetWithItems(ctx, supplyID)
}

func (r *PostgresSupplyRepository) DeleteItem(ctx context.Context, itemID int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var warehouseID, productID, quantity int
	err = tx.QueryRowContext(ctx,
		`SELECT s.warehouse_id, si.product_id, si.quantity
		 FROM supply_items si JOIN supplies s ON s.id = si.supply_id
		 WHERE si.id = $1`, itemID).Scan(&warehouseID, &productID, &quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSupplyItemNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, adjustInventoryQuery,
		warehouseID, productID, -quantity, time.Now().UTC()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM supply_items WHERE id = $1`, itemID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresSupplyRepository) ListByWarehouse(ctx context.Context, warehouseID int, f SupplyFilter) ([]models.Supply, int, error) {
	conditions := " AND warehouse_id = $1"
	args := []any{warehouseID}
	argIdx := 2

	if f.Search != "" {
		conditions += fmt.Sprintf(" AND supply_number ILIKE $%d", argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}
	if f.DateFrom != nil {
		conditions += fmt.Sprintf(" AND created_at::date >= $%d", argIdx)
		args = append(args, *f.DateFrom)
		argIdx++
	}
	if f.DateTo != nil {
		conditions += fmt.Sprintf(" AND created_at::date <= $%d", argIdx)
		args = append(args, *f.DateTo)
		argIdx++
	}
	if f.ProductID != nil {
		conditions += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM supply_items si WHERE si.supply_id = supplies.id AND si.product_id = $%d)", argIdx)
		args = append(args, *f.ProductID)
		argIdx++
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM supplies WHERE 1=1`+conditions, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, supply_number, warehouse_id, notes, created_at FROM supplies WHERE 1=1` +
		conditions + ` ORDER BY created_at DESC`
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

	var supplies []models.Supply
	for rows.Next() {
		var s models.Supply
		var notes sql.NullString
		if err := rows.Scan(&s.ID, &s.SupplyNumber, &s.WarehouseID, &notes, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		s.Notes = notes.String
		supplies = append(supplies, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range supplies {
		supplies[i].Items, err = r.itemsOf(ctx, supplies[i].ID)
		if err != nil {
			return nil, 0, err
		}
	}
	return supplies, total, nil
}

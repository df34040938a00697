package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iEkal8fGe/warehouse/internal/models"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `id, order_number, external_order_id, warehouse_id, status,
	postal_code, country, city, address, notes, tracking_number,
	created_at, updated_at, shipped_at`

func scanOrder(row interface{ Scan(...any) error }) (models.Order, error) {
	var o models.Order
	var externalID, notes, tracking sql.NullString
	err := row.Scan(&o.ID, &o.OrderNumber, &externalID, &o.WarehouseID, &o.Status,
		&o.PostalCode, &o.Country, &o.City, &o.Address, &notes, &tracking,
		&o.CreatedAt, &o.UpdatedAt, &o.ShippedAt)
	o.ExternalOrderID = externalID.String
	o.Notes = notes.String
	o.TrackingNumber = tracking.String
	return o, err
}

func (r *PostgresOrderRepository) nextOrderNumber(ctx context.Context, tx *sql.Tx) (string, error) {
	year := time.Now().Year()
	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE EXTRACT(YEAR FROM created_at) = $1`, year).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%d-%05d", year, count+1), nil
}

func (r *PostgresOrderRepository) Create(ctx context.Context, o models.Order) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, err
	}
	defer tx.Rollback()

	if o.OrderNumber == "" {
		o.OrderNumber, err = r.nextOrderNumber(ctx, tx)
		if err != nil {
			return models.Order{}, err
		}
	}
	if o.Status == "" {
		o.Status = models.OrderStatusNew
	}
	o.CreatedAt = time.Now().UTC()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (order_number, external_order_id, warehouse_id, status,
			postal_code, country, city, address, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		o.OrderNumber, nullable(o.ExternalOrderID), o.WarehouseID, o.Status,
		o.PostalCode, o.Country, o.City, o.Address, nullable(o.Notes), o.CreatedAt).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Order{}, ErrDuplicatedValueUnique
		}
		return models.Order{}, err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, created_at)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			o.ID, item.ProductID, item.Quantity, o.CreatedAt).Scan(&item.ID)
		if err != nil {
			return models.Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *PostgresOrderRepository) GetWithItems(ctx context.Context, id int) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}

	o.Items, err = r.itemsOf(ctx, o.ID)
	return o, err
}

func (r *PostgresOrderRepository) GetByExternalID(ctx context.Context, externalID string) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE external_order_id = $1`, externalID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}

	o.Items, err = r.itemsOf(ctx, o.ID)
	return o, err
}

func (r *PostgresOrderRepository) itemsOf(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity
		 FROM order_items oi JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1 ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresOrderRepository) Update(ctx context.Context, o models.Order) (models.Order, error) {
	query := `UPDATE orders SET status = $1, tracking_number = $2, notes = $3,
		shipped_at = $4, updated_at = $5 WHERE id = $6`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, o.Status, nullable(o.TrackingNumber),
		nullable(o.Notes), o.ShippedAt, now, o.ID)
	if err != nil {
		return models.Order{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Order{}, ErrOrderNotFound
	}
	o.UpdatedAt = &now
	return o, nil
}

func (r *PostgresOrderRepository) DeleteByExternalID(ctx context.Context, externalID string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE external_order_id = $1`, externalID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) List(ctx context.Context, f OrderFilter) ([]models.Order, int, error) {
	conditions := ""
	args := []any{}
	argIdx := 1

	if f.Search != "" {
		conditions += fmt.Sprintf(
			" AND (order_number ILIKE $%d OR external_order_id ILIKE $%d OR city ILIKE $%d OR address ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}
	if f.Status != nil {
		conditions += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *f.Status)
		argIdx++
	}
	if f.WarehouseID != nil {
		conditions += fmt.Sprintf(" AND warehouse_id = $%d", argIdx)
		args = append(args, *f.WarehouseID)
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
	if f.IsShipped != nil {
		if *f.IsShipped {
			conditions += " AND shipped_at IS NOT NULL"
		} else {
			conditions += " AND shipped_at IS NULL"
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE 1=1`+conditions, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1` + conditions + ` ORDER BY created_at DESC`
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

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		orders[i].Items, err = r.itemsOf(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Package repository holds the Orchestrator's own order store,
// grounded on shared/repository/repository.go's BaseRepository.Transaction
// helper for the single local transaction spec.md §4.3 step 7 requires.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/zeromicro/go-zero/core/trace"

	"github.com/shopfabric/backend/services/orchestrator/internal/models"
)

var ErrNotFound = errors.New("repository: not found")

const (
	insertOrderQuery = `
		INSERT INTO orders (owner_encrypted, owner_index, total_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at`

	insertOrderLineQuery = `
		INSERT INTO order_lines (order_id, product_id, quantity, price_at_purchase_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	getOrderByIDQuery      = `SELECT * FROM orders WHERE id = $1`
	getOrderLinesQuery     = `SELECT * FROM order_lines WHERE order_id = $1 ORDER BY id`
	listOrdersByOwnerQuery = `
		SELECT * FROM orders WHERE owner_index = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	countOrdersByOwnerQuery = `SELECT count(*) FROM orders WHERE owner_index = $1`
	listAllOrdersQuery      = `SELECT * FROM orders ORDER BY id DESC LIMIT $1 OFFSET $2`
	countAllOrdersQuery     = `SELECT count(*) FROM orders`
	updateOrderStatusQuery  = `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
)

// OrderRepository persists Order and OrderLine rows.
type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists an order and its lines in a single transaction, per
// spec.md §4.3 step 7. order.ID/CreatedAt/UpdatedAt and each line's ID
// are populated on success.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, lines []*models.OrderLine) error {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "OrderRepository.Create")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin transaction: %w", err)
	}

	if err := func() error {
		if err := tx.QueryRowxContext(ctx, insertOrderQuery, order.OwnerEncrypted, order.OwnerIndex, order.TotalCents, order.Status).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}
		for _, line := range lines {
			line.OrderID = order.ID
			if err := tx.QueryRowxContext(ctx, insertOrderLineQuery, line.OrderID, line.ProductID, line.Quantity, line.PriceAtPurchase).
				Scan(&line.ID); err != nil {
				return err
			}
		}
		return nil
	}(); err != nil {
		tx.Rollback()
		return fmt.Errorf("repository: create order: %w", err)
	}

	return tx.Commit()
}

// GetByID returns an order and its lines.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, []models.OrderLine, error) {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "OrderRepository.GetByID")
	defer span.End()

	var order models.Order
	if err := r.db.GetContext(ctx, &order, getOrderByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	lines, err := r.LinesForOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &order, lines, nil
}

// LinesForOrder returns the lines belonging to a single order.
func (r *OrderRepository) LinesForOrder(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "OrderRepository.LinesForOrder")
	defer span.End()

	var lines []models.OrderLine
	if err := r.db.SelectContext(ctx, &lines, getOrderLinesQuery, orderID); err != nil {
		return nil, err
	}
	return lines, nil
}

// ListByOwner returns one page of an owner's orders, newest first,
// looked up by the owner's blind index (see models.Order.OwnerIndex).
func (r *OrderRepository) ListByOwner(ctx context.Context, ownerIndex string, page, pageSize int) ([]models.Order, int, error) {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "OrderRepository.ListByOwner")
	defer span.End()

	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, listOrdersByOwnerQuery, ownerIndex, pageSize, (page-1)*pageSize); err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countOrdersByOwnerQuery, ownerIndex); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAll returns one page of every order, admin-only per spec.md §4.3.
func (r *OrderRepository) ListAll(ctx context.Context, page, pageSize int) ([]models.Order, int, error) {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "OrderRepository.ListAll")
	defer span.End()

	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, listAllOrdersQuery, pageSize, (page-1)*pageSize); err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countAllOrdersQuery); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus persists a status transition already validated by the caller
// against models.Status.CanTransition.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "OrderRepository.UpdateStatus")
	defer span.End()

	_, err := r.db.ExecContext(ctx, updateOrderStatusQuery, id, status)
	return err
}

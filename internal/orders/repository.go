package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commerce-core/internal/apperrors"
)

// Repository define a interface para operações de banco de dados de pedidos
type Repository interface {
	// CreateOrder persiste o pedido e suas linhas em uma única transação
	CreateOrder(ctx context.Context, order *Order) error

	// GetOrder busca um pedido pelo ID, incluindo as linhas
	GetOrder(ctx context.Context, id int64) (*Order, error)

	// ListOrders retorna todos os pedidos em ordem de criação
	ListOrders(ctx context.Context) ([]Order, error)

	// AdvanceStatus aplica uma transição de status com lock pessimista
	AdvanceStatus(ctx context.Context, id int64, next Status) (*Order, error)
}

// PostgresRepository implementa Repository usando PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository cria uma nova instância de PostgresRepository
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{
		db: db,
	}
}

// CreateOrder persiste o pedido e suas linhas em uma única transação
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperrors.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, shipping_address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, order.UserID, order.ShippingAddress, order.Status, order.CreatedAt, order.UpdatedAt).Scan(&order.ID)
	if err != nil {
		return apperrors.Internal("failed to create order", err)
	}

	for _, item := range order.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
			VALUES ($1, $2, $3, $4)
		`, order.ID, item.ProductID, item.Quantity, item.PriceAtPurchase)
		if err != nil {
			return apperrors.Internal("failed to create order item", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Internal("failed to commit order", err)
	}
	return nil
}

// GetOrder busca um pedido pelo ID, incluindo as linhas
func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var order Order
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, shipping_address, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, id).Scan(&order.ID, &order.UserID, &order.ShippingAddress, &order.Status,
		&order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get order", err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// ListOrders retorna todos os pedidos em ordem de criação
func (r *PostgresRepository) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, shipping_address, status, created_at, updated_at
		FROM orders ORDER BY id
	`)
	if err != nil {
		return nil, apperrors.Internal("failed to list orders", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var order Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.ShippingAddress, &order.Status,
			&order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, apperrors.Internal("failed to scan order", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to list orders", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// AdvanceStatus aplica uma transição de status. A linha do pedido fica
// bloqueada (FOR UPDATE) até o commit, então transições concorrentes são
// serializadas.
func (r *PostgresRepository) AdvanceStatus(ctx context.Context, id int64, next Status) (*Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var order Order
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, shipping_address, status, created_at, updated_at
		FROM orders WHERE id = $1
		FOR UPDATE
	`, id).Scan(&order.ID, &order.UserID, &order.ShippingAddress, &order.Status,
		&order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get order with lock", err)
	}

	if err := order.Advance(next); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3
	`, order.Status, order.UpdatedAt, order.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to update order status", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Internal("failed to commit status change", err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// loadItems carrega as linhas de um pedido na ordem em que foram inseridas
func (r *PostgresRepository) loadItems(ctx context.Context, orderID int64) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, quantity, price_at_purchase
		FROM order_items WHERE order_id = $1 ORDER BY id
	`, orderID)
	if err != nil {
		return nil, apperrors.Internal("failed to list order items", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.PriceAtPurchase); err != nil {
			return nil, apperrors.Internal("failed to scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to list order items", err)
	}
	return items, nil
}

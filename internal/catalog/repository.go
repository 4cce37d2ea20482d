package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"commerce-core/internal/apperrors"
)

// Repository define a interface para operações de banco de dados do catálogo
type Repository interface {
	// CreateProduct persiste um produto e preenche a identidade gerada
	CreateProduct(ctx context.Context, product *Product) error

	// GetProduct busca um produto pelo ID
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// ListProducts retorna todos os produtos em ordem de criação
	ListProducts(ctx context.Context) ([]Product, error)

	// ReserveStock decrementa o estoque atomicamente e retorna o preço
	// unitário no momento da reserva
	ReserveStock(ctx context.Context, productID int64, quantity int, reference string) (decimal.Decimal, error)

	// RestoreStock devolve o estoque de uma reserva desfeita
	RestoreStock(ctx context.Context, productID int64, quantity int, reference string) error
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

// CreateProduct persiste um produto e preenche a identidade gerada
func (r *PostgresRepository) CreateProduct(ctx context.Context, product *Product) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, product.Name, product.Description, product.Price, product.StockQuantity,
		product.CreatedAt, product.UpdatedAt).Scan(&product.ID)
	if err != nil {
		return apperrors.Internal("failed to create product", err)
	}
	return nil
}

// GetProduct busca um produto pelo ID
func (r *PostgresRepository) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, price, stock_quantity, created_at, updated_at
		FROM products WHERE id = $1
	`, id).Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.StockQuantity, &product.CreatedAt, &product.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("product %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get product", err)
	}
	return &product, nil
}

// ListProducts retorna todos os produtos em ordem de criação
func (r *PostgresRepository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price, stock_quantity, created_at, updated_at
		FROM products ORDER BY id
	`)
	if err != nil {
		return nil, apperrors.Internal("failed to list products", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var product Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
			&product.StockQuantity, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, apperrors.Internal("failed to scan product", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to list products", err)
	}
	return products, nil
}

// ReserveStock decrementa o estoque atomicamente e retorna o preço unitário.
// A checagem, o decremento e o snapshot do preço acontecem em um único
// UPDATE condicional, sem janela entre leitura e escrita.
func (r *PostgresRepository) ReserveStock(ctx context.Context, productID int64, quantity int, reference string) (decimal.Decimal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, apperrors.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var price decimal.Decimal
	err = tx.QueryRow(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $2,
		    updated_at = NOW()
		WHERE id = $1 AND stock_quantity >= $2
		RETURNING price
	`, productID, quantity).Scan(&price)

	if errors.Is(err, pgx.ErrNoRows) {
		// Distingue produto inexistente de estoque insuficiente
		var exists bool
		if err := tx.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", productID).Scan(&exists); err != nil {
			return decimal.Zero, apperrors.Internal("failed to check product existence", err)
		}
		if !exists {
			return decimal.Zero, apperrors.NotFound("product %d not found", productID)
		}
		return decimal.Zero, apperrors.InsufficientStock("insufficient stock for product %d", productID)
	}
	if err != nil {
		return decimal.Zero, apperrors.Internal("failed to reserve stock", err)
	}

	if err := r.insertMovement(ctx, tx, productID, -quantity, MovementTypeReserved, reference); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, apperrors.Internal("failed to commit reservation", err)
	}
	return price, nil
}

// RestoreStock devolve o estoque de uma reserva desfeita
func (r *PostgresRepository) RestoreStock(ctx context.Context, productID int64, quantity int, reference string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperrors.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + $2,
		    updated_at = NOW()
		WHERE id = $1
	`, productID, quantity)
	if err != nil {
		return apperrors.Internal("failed to restore stock", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product %d not found", productID)
	}

	if err := r.insertMovement(ctx, tx, productID, quantity, MovementTypeRestored, reference); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Internal("failed to commit restore", err)
	}
	return nil
}

// insertMovement registra a movimentação de estoque na mesma transação
func (r *PostgresRepository) insertMovement(ctx context.Context, tx pgx.Tx, productID int64, change int, movementType, reference string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (id, product_id, change_quantity, movement_type, reference)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New().String(), productID, change, movementType, reference)
	if err != nil {
		return apperrors.Internal("failed to insert movement record", err)
	}
	return nil
}

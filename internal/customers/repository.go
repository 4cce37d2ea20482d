package customers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"commerce-core/internal/apperrors"
)

// uniqueViolation é o código SQLSTATE para violação de constraint UNIQUE
const uniqueViolation = "23505"

// Repository define a interface para operações de banco de dados de clientes
type Repository interface {
	// CreateCustomer persiste um cliente e preenche a identidade gerada
	CreateCustomer(ctx context.Context, customer *Customer) error

	// GetCustomer busca um cliente pelo ID
	GetCustomer(ctx context.Context, id int64) (*Customer, error)

	// ListCustomers retorna todos os clientes em ordem de criação
	ListCustomers(ctx context.Context) ([]Customer, error)
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

// CreateCustomer persiste um cliente e preenche a identidade gerada
func (r *PostgresRepository) CreateCustomer(ctx context.Context, customer *Customer) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO customers (email, password_hash, first_name, last_name, phone_number, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, customer.Email, customer.PasswordHash, customer.FirstName, customer.LastName,
		customer.PhoneNumber, customer.ShippingAddress, customer.CreatedAt, customer.UpdatedAt).Scan(&customer.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.Conflict("email %s already registered", customer.Email)
	}
	if err != nil {
		return apperrors.Internal("failed to create customer", err)
	}
	return nil
}

// GetCustomer busca um cliente pelo ID
func (r *PostgresRepository) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name, phone_number, shipping_address, created_at, updated_at
		FROM customers WHERE id = $1
	`, id).Scan(&customer.ID, &customer.Email, &customer.PasswordHash, &customer.FirstName,
		&customer.LastName, &customer.PhoneNumber, &customer.ShippingAddress,
		&customer.CreatedAt, &customer.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("customer %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get customer", err)
	}
	return &customer, nil
}

// ListCustomers retorna todos os clientes em ordem de criação
func (r *PostgresRepository) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, first_name, last_name, phone_number, shipping_address, created_at, updated_at
		FROM customers ORDER BY id
	`)
	if err != nil {
		return nil, apperrors.Internal("failed to list customers", err)
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		var customer Customer
		if err := rows.Scan(&customer.ID, &customer.Email, &customer.FirstName, &customer.LastName,
			&customer.PhoneNumber, &customer.ShippingAddress, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, apperrors.Internal("failed to scan customer", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to list customers", err)
	}
	return customers, nil
}

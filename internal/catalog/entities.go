package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"commerce-core/internal/apperrors"
)

// Product representa um produto do catálogo
type Product struct {
	ID            int64           `json:"product_id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// NewProduct cria uma nova instância de Product
func NewProduct(name, description string, price decimal.Decimal, stockQuantity int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("product name is required")
	}
	if price.IsNegative() {
		return nil, apperrors.Validation("price must not be negative")
	}
	if stockQuantity < 0 {
		return nil, apperrors.Validation("stock_quantity must not be negative")
	}

	return &Product{
		Name:          name,
		Description:   description,
		Price:         price.Round(2),
		StockQuantity: stockQuantity,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}, nil
}

// StockMovement representa uma movimentação de estoque
type StockMovement struct {
	ID             string    `json:"id" db:"id"`
	ProductID      int64     `json:"product_id" db:"product_id"`
	ChangeQuantity int       `json:"change_quantity" db:"change_quantity"`
	MovementType   string    `json:"movement_type" db:"movement_type"`
	Reference      string    `json:"reference" db:"reference"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// MovementType representa os tipos de movimentação de estoque
const (
	MovementTypeReserved = "reserved"
	MovementTypeRestored = "restored"
)

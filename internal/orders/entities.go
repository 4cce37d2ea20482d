package orders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"commerce-core/internal/apperrors"
)

// Status representa os possíveis status de um pedido
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions define o grafo de transições permitidas. Estados ausentes
// são terminais.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

// ParseStatus valida um status vindo do transporte
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", apperrors.Validation("unknown status %q", s)
}

// Item representa uma linha do pedido. PriceAtPurchase é o preço unitário
// capturado no momento da reserva e nunca é recalculado.
type Item struct {
	ProductID       int64           `json:"product_id" db:"product_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase" db:"price_at_purchase"`
}

// Order representa um pedido no sistema
type Order struct {
	ID              int64     `json:"order_id" db:"id"`
	UserID          int64     `json:"user_id" db:"user_id"`
	ShippingAddress string    `json:"shipping_address" db:"shipping_address"`
	Status          Status    `json:"status" db:"status"`
	Items           []Item    `json:"items"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// NewOrder cria uma nova instância de Order com status pending
func NewOrder(userID int64, shippingAddress string, items []Item) (*Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, apperrors.Validation("shipping_address is required")
	}
	if len(items) == 0 {
		return nil, apperrors.Validation("order must have at least one item")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be greater than zero")
		}
	}

	return &Order{
		UserID:          userID,
		ShippingAddress: shippingAddress,
		Status:          StatusPending,
		Items:           items,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}, nil
}

// Advance move o pedido para o próximo status, respeitando a máquina de
// estados pending → paid → shipped → delivered, com cancelamento
// permitido a partir de pending e paid.
func (o *Order) Advance(next Status) error {
	for _, allowed := range transitions[o.Status] {
		if next == allowed {
			o.Status = next
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.InvalidTransition("cannot transition order from %s to %s", o.Status, next)
}

// Total calcula o valor do pedido a partir das linhas persistidas
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.PriceAtPurchase.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

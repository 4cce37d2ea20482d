package orders

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"commerce-core/internal/apperrors"
	"commerce-core/internal/customers"
)

// CustomerDirectory valida a existência do cliente dono do pedido
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id int64) (*customers.Customer, error)
}

// StockReserver abstrai a reserva atômica de estoque do catálogo.
// ReserveStock retorna o preço unitário capturado no momento da reserva.
type StockReserver interface {
	ReserveStock(ctx context.Context, productID int64, quantity int, reference string) (decimal.Decimal, error)
	RestoreStock(ctx context.Context, productID int64, quantity int, reference string) error
}

// UseCase contém a lógica de negócio dos pedidos
type UseCase struct {
	repository Repository
	directory  CustomerDirectory
	catalog    StockReserver
	tracer     trace.Tracer

	created  metric.Int64Counter
	rejected metric.Int64Counter
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(
	repository Repository,
	directory CustomerDirectory,
	catalog StockReserver,
	tracer trace.Tracer,
) *UseCase {
	meter := otel.Meter("commerce-core/orders")
	created, err := meter.Int64Counter("orders.created")
	if err != nil {
		log.Printf("⚠️ Failed to create orders.created counter: %v", err)
	}
	rejected, err := meter.Int64Counter("orders.rejected")
	if err != nil {
		log.Printf("⚠️ Failed to create orders.rejected counter: %v", err)
	}

	return &UseCase{
		repository: repository,
		directory:  directory,
		catalog:    catalog,
		tracer:     tracer,
		created:    created,
		rejected:   rejected,
	}
}

// Line representa uma linha solicitada pelo chamador. Qualquer preço
// enviado pelo cliente é ignorado: o valor autoritativo vem do catálogo
// no momento da reserva.
type Line struct {
	ProductID int64
	Quantity  int
}

// CreateOrderInput representa os dados para criar um pedido
type CreateOrderInput struct {
	CustomerID      int64
	ShippingAddress string
	Lines           []Line
}

// CreateOrder valida o cliente, reserva estoque linha a linha na ordem
// dada e persiste o pedido com status pending. Se qualquer reserva
// falhar, todas as reservas anteriores são desfeitas antes de o erro ser
// devolvido: ou o pedido inteiro acontece, ou nada acontece.
func (uc *UseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	ctx, span := uc.tracer.Start(ctx, "create_order")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", input.CustomerID),
		attribute.Int("line_count", len(input.Lines)),
	)

	if _, err := uc.directory.GetCustomer(ctx, input.CustomerID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// Valida tudo o que não depende do catálogo antes de reservar
	// qualquer estoque
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return nil, apperrors.Validation("shipping_address is required")
	}
	if len(input.Lines) == 0 {
		return nil, apperrors.Validation("order must have at least one item")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be greater than zero")
		}
	}

	// A referência da reserva liga as movimentações de estoque desta
	// tentativa, inclusive as de rollback
	reference := uuid.New().String()

	items := make([]Item, 0, len(input.Lines))
	for _, line := range input.Lines {
		price, err := uc.catalog.ReserveStock(ctx, line.ProductID, line.Quantity, reference)
		if err != nil {
			uc.rollbackReservations(ctx, items, reference)
			span.RecordError(err)
			if uc.rejected != nil {
				uc.rejected.Add(ctx, 1)
			}
			return nil, err
		}
		items = append(items, Item{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: price,
		})
	}

	order, err := NewOrder(input.CustomerID, input.ShippingAddress, items)
	if err != nil {
		uc.rollbackReservations(ctx, items, reference)
		span.RecordError(err)
		return nil, err
	}

	if err := uc.repository.CreateOrder(ctx, order); err != nil {
		log.Printf("❌ Failed to persist order, rolling back reservations | Ref=%s", reference)
		uc.rollbackReservations(ctx, items, reference)
		span.RecordError(err)
		return nil, err
	}

	if uc.created != nil {
		uc.created.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Int64("order_id", order.ID))
	log.Printf("✅ Order created: %d (customer %d, %d items)", order.ID, order.UserID, len(order.Items))
	return order, nil
}

// rollbackReservations devolve o estoque das reservas já feitas, em ordem
// inversa. Falhas individuais são registradas mas não interrompem as
// demais devoluções.
func (uc *UseCase) rollbackReservations(ctx context.Context, items []Item, reference string) {
	// A compensação precisa acontecer mesmo quando o chamador abortou a
	// requisição, senão o estoque já reservado vaza para sempre
	ctx = context.WithoutCancel(ctx)
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if err := uc.catalog.RestoreStock(ctx, item.ProductID, item.Quantity, reference); err != nil {
			log.Printf("❌ Failed to restore stock | ProductID=%d Qty=%d Ref=%s: %v",
				item.ProductID, item.Quantity, reference, err)
		}
	}
}

// GetOrder busca um pedido pelo ID
func (uc *UseCase) GetOrder(ctx context.Context, id int64) (*Order, error) {
	ctx, span := uc.tracer.Start(ctx, "get_order")
	defer span.End()

	span.SetAttributes(attribute.Int64("order_id", id))
	return uc.repository.GetOrder(ctx, id)
}

// ListOrders retorna todos os pedidos
func (uc *UseCase) ListOrders(ctx context.Context) ([]Order, error) {
	ctx, span := uc.tracer.Start(ctx, "list_orders")
	defer span.End()

	return uc.repository.ListOrders(ctx)
}

// AdvanceStatus aplica uma transição da máquina de estados do pedido
func (uc *UseCase) AdvanceStatus(ctx context.Context, id int64, next Status) (*Order, error) {
	ctx, span := uc.tracer.Start(ctx, "advance_order_status")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", id),
		attribute.String("next_status", string(next)),
	)

	order, err := uc.repository.AdvanceStatus(ctx, id, next)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	log.Printf("✅ Order %d advanced to %s", order.ID, order.Status)
	return order, nil
}

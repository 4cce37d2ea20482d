package catalog

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// UseCase contém a lógica de negócio do catálogo
type UseCase struct {
	repository Repository
	tracer     trace.Tracer

	reservations      metric.Int64Counter
	reservationFailed metric.Int64Counter
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository, tracer trace.Tracer) *UseCase {
	meter := otel.Meter("commerce-core/catalog")
	reservations, err := meter.Int64Counter("catalog.stock.reservations")
	if err != nil {
		log.Printf("⚠️ Failed to create reservations counter: %v", err)
	}
	reservationFailed, err := meter.Int64Counter("catalog.stock.reservation_failures")
	if err != nil {
		log.Printf("⚠️ Failed to create reservation_failures counter: %v", err)
	}

	return &UseCase{
		repository:        repository,
		tracer:            tracer,
		reservations:      reservations,
		reservationFailed: reservationFailed,
	}
}

// CreateProduct valida e persiste um novo produto
func (uc *UseCase) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal, stockQuantity int) (*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "create_product")
	defer span.End()

	product, err := NewProduct(name, description, price, stockQuantity)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.repository.CreateProduct(ctx, product); err != nil {
		log.Printf("❌ Failed to create product: %v", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("product_id", product.ID))
	log.Printf("✅ Product created: %d (%s)", product.ID, product.Name)
	return product, nil
}

// GetProduct busca um produto pelo ID
func (uc *UseCase) GetProduct(ctx context.Context, id int64) (*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "get_product")
	defer span.End()

	span.SetAttributes(attribute.Int64("product_id", id))
	return uc.repository.GetProduct(ctx, id)
}

// ListProducts retorna todos os produtos
func (uc *UseCase) ListProducts(ctx context.Context) ([]Product, error) {
	ctx, span := uc.tracer.Start(ctx, "list_products")
	defer span.End()

	return uc.repository.ListProducts(ctx)
}

// ReserveStock decrementa o estoque atomicamente e retorna o preço
// unitário capturado no momento da reserva
func (uc *UseCase) ReserveStock(ctx context.Context, productID int64, quantity int, reference string) (decimal.Decimal, error) {
	ctx, span := uc.tracer.Start(ctx, "reserve_stock")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product_id", productID),
		attribute.Int("quantity", quantity),
		attribute.String("reference", reference),
	)

	price, err := uc.repository.ReserveStock(ctx, productID, quantity, reference)
	if err != nil {
		log.Printf("❌ [RESERVE] Failed for ProductID=%d Ref=%s: %v", productID, reference, err)
		span.RecordError(err)
		if uc.reservationFailed != nil {
			uc.reservationFailed.Add(ctx, 1)
		}
		return decimal.Zero, err
	}

	if uc.reservations != nil {
		uc.reservations.Add(ctx, 1)
	}
	log.Printf("✅ [RESERVE] ProductID=%d Quantity=%d Ref=%s", productID, quantity, reference)
	return price, nil
}

// RestoreStock devolve o estoque de uma reserva desfeita (rollback)
func (uc *UseCase) RestoreStock(ctx context.Context, productID int64, quantity int, reference string) error {
	ctx, span := uc.tracer.Start(ctx, "restore_stock")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product_id", productID),
		attribute.Int("quantity", quantity),
		attribute.String("reference", reference),
	)

	if err := uc.repository.RestoreStock(ctx, productID, quantity, reference); err != nil {
		log.Printf("❌ [RESTORE] Failed for ProductID=%d Ref=%s: %v", productID, reference, err)
		span.RecordError(err)
		return err
	}

	log.Printf("↩️ [RESTORE] ProductID=%d Quantity=%d Ref=%s", productID, quantity, reference)
	return nil
}

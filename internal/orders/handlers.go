package orders

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"commerce-core/internal/apperrors"
)

// UseCaseInterface define a interface para o use case de pedidos
type UseCaseInterface interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	AdvanceStatus(ctx context.Context, id int64, next Status) (*Order, error)
}

// Handler contém os handlers HTTP de pedidos
type Handler struct {
	useCase UseCaseInterface
	tracer  trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase UseCaseInterface, tracer trace.Tracer) *Handler {
	return &Handler{
		useCase: useCase,
		tracer:  tracer,
	}
}

// CreateOrderRequest representa a requisição para criar um pedido
type CreateOrderRequest struct {
	UserID          int64              `json:"user_id" binding:"required"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required"`
}

// OrderItemRequest representa uma linha solicitada. PriceAtPurchase é
// aceito por compatibilidade com clientes antigos, mas o preço
// autoritativo é sempre o snapshot do catálogo na reserva.
type OrderItemRequest struct {
	ProductID       int64            `json:"product_id" binding:"required"`
	Quantity        int              `json:"quantity" binding:"required"`
	PriceAtPurchase *decimal.Decimal `json:"price_at_purchase,omitempty"`
}

// CreateOrder cria um novo pedido
func (h *Handler) CreateOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "http.create_order")
	defer span.End()

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.Int64("user_id", req.UserID),
		attribute.Int("item_count", len(req.Items)),
	)

	lines := make([]Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.useCase.CreateOrder(ctx, CreateOrderInput{
		CustomerID:      req.UserID,
		ShippingAddress: req.ShippingAddress,
		Lines:           lines,
	})
	if err != nil {
		span.RecordError(err)
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.Int64("order_id", order.ID))
	c.JSON(http.StatusCreated, order)
}

// AdvanceStatusRequest representa a requisição de transição de status
type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdvanceStatus aplica uma transição da máquina de estados do pedido
func (h *Handler) AdvanceStatus(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "http.advance_order_status")
	defer span.End()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next, err := ParseStatus(req.Status)
	if err != nil {
		span.RecordError(err)
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	order, err := h.useCase.AdvanceStatus(ctx, id, next)
	if err != nil {
		span.RecordError(err)
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

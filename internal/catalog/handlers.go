package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"commerce-core/internal/apperrors"
)

// UseCaseInterface define a interface para o use case do catálogo
type UseCaseInterface interface {
	CreateProduct(ctx context.Context, name, description string, price decimal.Decimal, stockQuantity int) (*Product, error)
}

// Handler contém os handlers HTTP do catálogo
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

// CreateProductRequest representa a requisição para criar um produto
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

// CreateProduct cria um novo produto no catálogo
func (h *Handler) CreateProduct(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "http.create_product")
	defer span.End()

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.String("product_name", req.Name))

	product, err := h.useCase.CreateProduct(ctx, req.Name, req.Description, req.Price, req.StockQuantity)
	if err != nil {
		span.RecordError(err)
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

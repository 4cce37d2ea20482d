package customers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"commerce-core/internal/apperrors"
)

// UseCaseInterface define a interface para o use case de clientes
type UseCaseInterface interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*Customer, error)
}

// Handler contém os handlers HTTP de clientes
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

// CreateCustomerRequest representa a requisição para registrar um cliente
type CreateCustomerRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	PhoneNumber     string `json:"phone_number"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// CreateCustomer registra um novo cliente
func (h *Handler) CreateCustomer(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "http.create_customer")
	defer span.End()

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.useCase.CreateCustomer(ctx, CreateCustomerInput{
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		span.RecordError(err)
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.Int64("customer_id", customer.ID))
	c.JSON(http.StatusCreated, customer)
}

package customers

import (
	"context"
	"log"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"commerce-core/internal/apperrors"
)

// UseCase contém a lógica de negócio do diretório de clientes
type UseCase struct {
	repository Repository
	tracer     trace.Tracer
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository, tracer trace.Tracer) *UseCase {
	return &UseCase{
		repository: repository,
		tracer:     tracer,
	}
}

// CreateCustomerInput representa os dados para registrar um cliente
type CreateCustomerInput struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	PhoneNumber     string
	ShippingAddress string
}

// CreateCustomer valida os dados, aplica hash na credencial e persiste
// o cliente. A senha em texto puro nunca é armazenada.
func (uc *UseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*Customer, error) {
	ctx, span := uc.tracer.Start(ctx, "create_customer")
	defer span.End()

	if strings.TrimSpace(input.Password) == "" {
		return nil, apperrors.Validation("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Internal("failed to hash credential", err)
	}

	customer, err := NewCustomer(input.Email, string(hash), input.FirstName,
		input.LastName, input.PhoneNumber, input.ShippingAddress)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.repository.CreateCustomer(ctx, customer); err != nil {
		log.Printf("❌ Failed to create customer: %v", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("customer_id", customer.ID))
	log.Printf("✅ Customer created: %d", customer.ID)
	return customer, nil
}

// GetCustomer busca um cliente pelo ID
func (uc *UseCase) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	ctx, span := uc.tracer.Start(ctx, "get_customer")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer_id", id))
	return uc.repository.GetCustomer(ctx, id)
}

// ListCustomers retorna todos os clientes, sem material de credencial
func (uc *UseCase) ListCustomers(ctx context.Context) ([]Customer, error) {
	ctx, span := uc.tracer.Start(ctx, "list_customers")
	defer span.End()

	return uc.repository.ListCustomers(ctx)
}

package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.opentelemetry.io/otel"

	"commerce-core/internal/apperrors"
	"commerce-core/internal/customers"
)

// MockRepository para testes que não precisam de banco real
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrder(ctx context.Context, order *Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockRepository) GetOrder(ctx context.Context, id int64) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListOrders(ctx context.Context) ([]Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) AdvanceStatus(ctx context.Context, id int64, next Status) (*Order, error) {
	args := m.Called(ctx, id, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

// MockDirectory simula o diretório de clientes
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetCustomer(ctx context.Context, id int64) (*customers.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customers.Customer), args.Error(1)
}

// MockCatalog simula a reserva de estoque do catálogo
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ReserveStock(ctx context.Context, productID int64, quantity int, reference string) (decimal.Decimal, error) {
	args := m.Called(ctx, productID, quantity, reference)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCatalog) RestoreStock(ctx context.Context, productID int64, quantity int, reference string) error {
	args := m.Called(ctx, productID, quantity, reference)
	return args.Error(0)
}

func newMocks() (*MockRepository, *MockDirectory, *MockCatalog, *UseCase) {
	repo := new(MockRepository)
	directory := new(MockDirectory)
	catalog := new(MockCatalog)
	uc := NewUseCase(repo, directory, catalog, otel.Tracer("orders-test"))
	return repo, directory, catalog, uc
}

func TestUseCase_CreateOrder(t *testing.T) {
	// Arrange
	repo, directory, catalog, uc := newMocks()
	ctx := context.Background()
	price := decimal.RequireFromString("10.00")

	directory.On("GetCustomer", mock.Anything, int64(7)).
		Return(&customers.Customer{ID: 7}, nil)
	catalog.On("ReserveStock", mock.Anything, int64(1), 3, mock.AnythingOfType("string")).
		Return(price, nil)
	repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*orders.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Order).ID = 42
		}).
		Return(nil)

	// Act
	order, err := uc.CreateOrder(ctx, CreateOrderInput{
		CustomerID:      7,
		ShippingAddress: "456 Order Street",
		Lines:           []Line{{ProductID: 1, Quantity: 3}},
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, StatusPending, order.Status)
	assert.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].PriceAtPurchase.Equal(price))
	repo.AssertExpectations(t)
	directory.AssertExpectations(t)
	catalog.AssertExpectations(t)
	catalog.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_CreateOrder_CustomerNotFound(t *testing.T) {
	// Arrange
	_, directory, catalog, uc := newMocks()

	directory.On("GetCustomer", mock.Anything, int64(99)).
		Return(nil, apperrors.NotFound("customer 99 not found"))

	// Act
	order, err := uc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:      99,
		ShippingAddress: "456 Order Street",
		Lines:           []Line{{ProductID: 1, Quantity: 1}},
	})

	// Assert
	assert.Nil(t, order)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	catalog.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_CreateOrder_EmptyLines(t *testing.T) {
	// Arrange
	_, directory, catalog, uc := newMocks()

	directory.On("GetCustomer", mock.Anything, int64(7)).
		Return(&customers.Customer{ID: 7}, nil)

	// Act
	order, err := uc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:      7,
		ShippingAddress: "456 Order Street",
		Lines:           []Line{},
	})

	// Assert
	assert.Nil(t, order)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	catalog.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_CreateOrder_EmptyShippingAddress(t *testing.T) {
	// Arrange
	_, directory, catalog, uc := newMocks()

	directory.On("GetCustomer", mock.Anything, int64(7)).
		Return(&customers.Customer{ID: 7}, nil)

	// Act
	order, err := uc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:      7,
		ShippingAddress: "   ",
		Lines:           []Line{{ProductID: 1, Quantity: 1}},
	})

	// Assert: a validação acontece antes de qualquer reserva de estoque
	assert.Nil(t, order)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	catalog.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_CreateOrder_NonPositiveQuantity(t *testing.T) {
	// Arrange
	_, directory, catalog, uc := newMocks()

	directory.On("GetCustomer", mock.Anything, int64(7)).
		Return(&customers.Customer{ID: 7}, nil)

	// Act
	order, err := uc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:      7,
		ShippingAddress: "456 Order Street",
		Lines:           []Line{{ProductID: 1, Quantity: 0}},
	})

	// Assert
	assert.Nil(t, order)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	catalog.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_CreateOrder_RollsBackOnSecondLineFailure(t *testing.T) {
	// Arrange
	repo, directory, catalog, uc := newMocks()
	ctx := context.Background()

	directory.On("GetCustomer", mock.Anything, int64(7)).
		Return(&customers.Customer{ID: 7}, nil)
	catalog.On("ReserveStock", mock.Anything, int64(1), 2, mock.AnythingOfType("string")).
		Return(decimal.RequireFromString("10.00"), nil)
	catalog.On("ReserveStock", mock.Anything, int64(2), 5, mock.AnythingOfType("string")).
		Return(decimal.Zero, apperrors.InsufficientStock("insufficient stock for product 2"))
	catalog.On("RestoreStock", mock.Anything, int64(1), 2, mock.AnythingOfType("string")).
		Return(nil)

	// Act
	order, err := uc.CreateOrder(ctx, CreateOrderInput{
		CustomerID:      7,
		ShippingAddress: "456 Order Street",
		Lines: []Line{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 5},
		},
	})

	// Assert
	assert.Nil(t, order)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInsufficientStock))

	// A primeira reserva foi desfeita e nenhum pedido foi persistido
	catalog.AssertCalled(t, "RestoreStock", mock.Anything, int64(1), 2, mock.AnythingOfType("string"))
	repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestUseCase_CreateOrder_RollsBackWhenPersistFails(t *testing.T) {
	// Arrange
	repo, directory, catalog, uc := newMocks()
	ctx := context.Background()

	directory.On("GetCustomer", mock.Anything, int64(7)).
		Return(&customers.Customer{ID: 7}, nil)
	catalog.On("ReserveStock", mock.Anything, int64(1), 1, mock.AnythingOfType("string")).
		Return(decimal.RequireFromString("10.00"), nil)
	catalog.On("ReserveStock", mock.Anything, int64(2), 1, mock.AnythingOfType("string")).
		Return(decimal.RequireFromString("5.50"), nil)
	catalog.On("RestoreStock", mock.Anything, mock.AnythingOfType("int64"), 1, mock.AnythingOfType("string")).
		Return(nil)
	repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*orders.Order")).
		Return(apperrors.Internal("failed to create order", assert.AnError))

	// Act
	order, err := uc.CreateOrder(ctx, CreateOrderInput{
		CustomerID:      7,
		ShippingAddress: "456 Order Street",
		Lines: []Line{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 1},
		},
	})

	// Assert
	assert.Nil(t, order)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))

	// Todas as reservas foram devolvidas
	catalog.AssertNumberOfCalls(t, "RestoreStock", 2)
}

func TestUseCase_AdvanceStatus(t *testing.T) {
	// Arrange
	repo, _, _, uc := newMocks()
	expected := &Order{ID: 42, Status: StatusPaid}

	repo.On("AdvanceStatus", mock.Anything, int64(42), StatusPaid).Return(expected, nil)

	// Act
	order, err := uc.AdvanceStatus(context.Background(), 42, StatusPaid)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, order.Status)
	repo.AssertExpectations(t)
}

func TestUseCase_AdvanceStatus_InvalidTransition(t *testing.T) {
	// Arrange
	repo, _, _, uc := newMocks()

	repo.On("AdvanceStatus", mock.Anything, int64(42), StatusDelivered).
		Return(nil, apperrors.InvalidTransition("cannot transition order from pending to delivered"))

	// Act
	order, err := uc.AdvanceStatus(context.Background(), 42, StatusDelivered)

	// Assert
	assert.Nil(t, order)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	repo.AssertExpectations(t)
}

package query

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"commerce-core/internal/apperrors"
	"commerce-core/internal/catalog"
	"commerce-core/internal/customers"
	"commerce-core/internal/orders"
)

type stubProducts struct {
	products []catalog.Product
}

func (s stubProducts) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, apperrors.NotFound("product %d not found", id)
}

func (s stubProducts) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

type stubCustomers struct {
	customers []customers.Customer
}

func (s stubCustomers) ListCustomers(ctx context.Context) ([]customers.Customer, error) {
	return s.customers, nil
}

type stubOrders struct {
	orders []orders.Order
}

func (s stubOrders) GetOrder(ctx context.Context, id int64) (*orders.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], nil
		}
	}
	return nil, apperrors.NotFound("order %d not found", id)
}

func (s stubOrders) ListOrders(ctx context.Context) ([]orders.Order, error) {
	return s.orders, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	facade := NewFacade(
		stubProducts{products: []catalog.Product{
			{ID: 1, Name: "Widget", Price: decimal.RequireFromString("10.00"), StockQuantity: 5},
		}},
		stubCustomers{customers: []customers.Customer{
			{ID: 7, Email: "user@example.com", PasswordHash: "secret-hash"},
		}},
		stubOrders{orders: []orders.Order{
			{ID: 42, UserID: 7, Status: orders.StatusPending},
		}},
	)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/customers", facade.ListCustomers)
	api.GET("/products", facade.ListProducts)
	api.GET("/products/:id", facade.GetProduct)
	api.GET("/orders", facade.ListOrders)
	api.GET("/orders/:id", facade.GetOrder)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFacade_ListProducts(t *testing.T) {
	// Arrange
	r := newTestRouter()

	// Act
	w := doRequest(t, r, "/api/products")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
	assert.Equal(t, "Widget", list[0]["name"])
}

func TestFacade_GetProduct(t *testing.T) {
	// Arrange
	r := newTestRouter()

	// Act & Assert
	w := doRequest(t, r, "/api/products/1")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, "/api/products/99")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, "/api/products/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFacade_ListCustomers_ExcludesCredential(t *testing.T) {
	// Arrange
	r := newTestRouter()

	// Act
	w := doRequest(t, r, "/api/customers")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"customer_id":7`)
	assert.NotContains(t, w.Body.String(), "secret-hash")
}

func TestFacade_GetOrder(t *testing.T) {
	// Arrange
	r := newTestRouter()

	// Act & Assert
	w := doRequest(t, r, "/api/orders/42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)

	w = doRequest(t, r, "/api/orders/1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacade_ListOrders(t *testing.T) {
	// Arrange
	r := newTestRouter()

	// Act
	w := doRequest(t, r, "/api/orders")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

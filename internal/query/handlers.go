package query

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"commerce-core/internal/apperrors"
)

// ListProducts retorna todos os produtos
func (f *Facade) ListProducts(c *gin.Context) {
	products, err := f.products.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct retorna um produto pelo ID
func (f *Facade) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := f.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListCustomers retorna todos os clientes, sem material de credencial
func (f *Facade) ListCustomers(c *gin.Context) {
	customers, err := f.customers.ListCustomers(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// ListOrders retorna todos os pedidos
func (f *Facade) ListOrders(c *gin.Context) {
	orders, err := f.orders.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder retorna um pedido pelo ID
func (f *Facade) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := f.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

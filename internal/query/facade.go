// Package query expõe o caminho de leitura (listagem e busca) dos três
// stores, separado dos caminhos de escrita. O facade só conhece as
// operações read-only de cada componente.
package query

import (
	"context"

	"commerce-core/internal/catalog"
	"commerce-core/internal/customers"
	"commerce-core/internal/orders"
)

// ProductReader expõe as leituras do Catalog Store
type ProductReader interface {
	GetProduct(ctx context.Context, id int64) (*catalog.Product, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

// CustomerReader expõe as leituras do Customer Directory
type CustomerReader interface {
	ListCustomers(ctx context.Context) ([]customers.Customer, error)
}

// OrderReader expõe as leituras do Order Ledger
type OrderReader interface {
	GetOrder(ctx context.Context, id int64) (*orders.Order, error)
	ListOrders(ctx context.Context) ([]orders.Order, error)
}

// Facade agrega as leituras dos três stores
type Facade struct {
	products  ProductReader
	customers CustomerReader
	orders    OrderReader
}

// NewFacade cria uma nova instância de Facade
func NewFacade(products ProductReader, customers CustomerReader, orders OrderReader) *Facade {
	return &Facade{
		products:  products,
		customers: customers,
		orders:    orders,
	}
}

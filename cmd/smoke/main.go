// Smoke client: percorre o fluxo de ponta a ponta contra um servidor em
// execução. Cria cliente, produto e pedido, confere o snapshot de preço
// e o decremento de estoque, e força uma rejeição por estoque
// insuficiente.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type customerResponse struct {
	CustomerID      int64  `json:"customer_id"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
}

type productResponse struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

type orderItemResponse struct {
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

type orderResponse struct {
	OrderID int64               `json:"order_id"`
	UserID  int64               `json:"user_id"`
	Status  string              `json:"status"`
	Items   []orderItemResponse `json:"items"`
}

func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	suffix := fmt.Sprintf("%06d", rand.Intn(1000000))

	// 1. Create a customer
	var customer customerResponse
	resp, err := client.R().
		SetBody(map[string]any{
			"email":            fmt.Sprintf("smoke_%s@example.com", suffix),
			"password":         "SmokePass123",
			"first_name":       "Smoke",
			"last_name":        "Tester",
			"phone_number":     "1112223333",
			"shipping_address": "456 Smoke Street",
		}).
		SetResult(&customer).
		Post("/api/customers")
	check(err, resp, 201, "create customer")
	log.Printf("✅ Customer %d created", customer.CustomerID)

	// 2. Create a product with stock 5
	var product productResponse
	resp, err = client.R().
		SetBody(map[string]any{
			"name":           fmt.Sprintf("Widget %s", suffix),
			"description":    "Smoke test widget",
			"price":          10.00,
			"stock_quantity": 5,
		}).
		SetResult(&product).
		Post("/api/products")
	check(err, resp, 201, "create product")
	log.Printf("✅ Product %d created with stock %d", product.ProductID, product.StockQuantity)

	// 3. Place an order for 3 units
	var order orderResponse
	resp, err = client.R().
		SetBody(map[string]any{
			"user_id":          customer.CustomerID,
			"shipping_address": customer.ShippingAddress,
			"items": []map[string]any{
				{"product_id": product.ProductID, "quantity": 3},
			},
		}).
		SetResult(&order).
		Post("/api/orders")
	check(err, resp, 201, "create order")

	if order.Status != "pending" {
		log.Fatalf("❌ Expected order status pending, got %s", order.Status)
	}
	if len(order.Items) != 1 || !order.Items[0].PriceAtPurchase.Equal(product.Price) {
		log.Fatalf("❌ Expected price_at_purchase %s, got %+v", product.Price, order.Items)
	}
	log.Printf("✅ Order %d pending with snapshotted price %s", order.OrderID, order.Items[0].PriceAtPurchase)

	// 4. Stock must now be 2
	var fetched productResponse
	resp, err = client.R().
		SetResult(&fetched).
		Get(fmt.Sprintf("/api/products/%d", product.ProductID))
	check(err, resp, 200, "fetch product")
	if fetched.StockQuantity != 2 {
		log.Fatalf("❌ Expected stock 2 after order, got %d", fetched.StockQuantity)
	}
	log.Printf("✅ Stock decremented to %d", fetched.StockQuantity)

	// 5. A second order for 3 units must be rejected, stock untouched
	resp, err = client.R().
		SetBody(map[string]any{
			"user_id":          customer.CustomerID,
			"shipping_address": customer.ShippingAddress,
			"items": []map[string]any{
				{"product_id": product.ProductID, "quantity": 3},
			},
		}).
		Post("/api/orders")
	check(err, resp, 409, "oversell order")

	resp, err = client.R().
		SetResult(&fetched).
		Get(fmt.Sprintf("/api/products/%d", product.ProductID))
	check(err, resp, 200, "fetch product after rejection")
	if fetched.StockQuantity != 2 {
		log.Fatalf("❌ Expected stock to remain 2 after rejection, got %d", fetched.StockQuantity)
	}

	log.Println("✅ Smoke flow passed")
}

func check(err error, resp *resty.Response, wantStatus int, step string) {
	if err != nil {
		log.Fatalf("❌ %s: %v", step, err)
	}
	if resp.StatusCode() != wantStatus {
		log.Fatalf("❌ %s: expected status %d, got %d (%s)", step, wantStatus, resp.StatusCode(), resp.String())
	}
}

package handlers

import (
	"time"

	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// ProductResponse is one catalog entry. Index is the 1-based position in the
// list the shopper was just shown; it is omitted outside list responses.
type ProductResponse struct {
	Index       int      `json:"index,omitempty"   example:"1"`
	ID          string   `json:"id"                example:"hoodie-001"`
	Name        string   `json:"name"              example:"Black Logo Hoodie"`
	Description string   `json:"description"       example:"Unisex cotton hoodie with logo"`
	Price       int64    `json:"price"             example:"1499"`
	Currency    string   `json:"currency"          example:"INR"`
	Category    string   `json:"category"          example:"hoodie"`
	Color       string   `json:"color"             example:"black"`
	Sizes       []string `json:"sizes,omitempty"   example:"S,M,L,XL"`
	Image       string   `json:"image,omitempty"`
} // @name Product

// ProductListResponse is returned by GET /api/products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count" example:"4"`
} // @name ProductList

// LineItemResponse is one line of an order.
type LineItemResponse struct {
	ProductID   string `json:"product_id"     example:"hoodie-001"`
	ProductName string `json:"product_name"   example:"Black Logo Hoodie"`
	Quantity    int    `json:"quantity"       example:"2"`
	Size        string `json:"size,omitempty" example:"M"`
	Price       int64  `json:"price"          example:"1499"`
	LineTotal   int64  `json:"line_total"     example:"2998"`
} // @name LineItem

// OrderResponse is a placed order.
type OrderResponse struct {
	ID        string             `json:"id"         example:"order_20250115_120000"`
	Items     []LineItemResponse `json:"items"`
	Total     int64              `json:"total"      example:"2998"`
	Currency  string             `json:"currency"   example:"INR"`
	CreatedAt time.Time          `json:"created_at" example:"2025-01-15T12:00:00Z"`
	Status    string             `json:"status"     example:"completed"`
} // @name Order

// CustomerResponse echoes the delivery details held in the session.
type CustomerResponse struct {
	Name                 string `json:"name"                  example:"Asha Rao"`
	Address              string `json:"address"               example:"12 MG Road, Pune"`
	DeliveryInstructions string `json:"delivery_instructions" example:"Leave at the gate"`
} // @name Customer

func toProductResponse(p models.Product, index int) ProductResponse {
	return ProductResponse{
		Index:       index,
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Category:    string(p.Category),
		Color:       p.Color,
		Sizes:       p.Sizes,
		Image:       p.Image,
	}
}

func toOrderResponse(o models.Order) OrderResponse {
	items := make([]LineItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = LineItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Size:        it.Size,
			Price:       it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}
	return OrderResponse{
		ID:        o.ID,
		Items:     items,
		Total:     o.Total,
		Currency:  o.Currency,
		CreatedAt: o.CreatedAt,
		Status:    o.Status,
	}
}

func toCustomerResponse(c models.Customer) CustomerResponse {
	return CustomerResponse{
		Name:                 c.Name,
		Address:              c.Address,
		DeliveryInstructions: c.DeliveryInstructions,
	}
}

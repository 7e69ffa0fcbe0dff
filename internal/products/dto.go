package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// InventoryDTO is the wire shape of a single warehouse stock row.
type InventoryDTO struct {
	ID          uuid.UUID `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductDTO is the wire shape of a product with its inventory rows.
type ProductDTO struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	SKU         string         `json:"sku"`
	Price       string         `json:"price"`
	Inventories []InventoryDTO `json:"inventories"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProductSummary is the flattened list row, with stock aggregated across warehouses.
type ProductSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	SKU            string    `json:"sku"`
	Price          string    `json:"price"`
	TotalQuantity  int       `json:"total_quantity"`
	WarehouseCount int       `json:"warehouse_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductListResult carries one page of summaries plus the cursor for the next.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// NewProductDTO maps a model to its wire shape. Price is rendered with two
// decimal places so "19.99" comes back exactly as stored.
func NewProductDTO(product *models.Product) *ProductDTO {
	inventories := make([]InventoryDTO, 0, len(product.Inventories))
	for _, item := range product.Inventories {
		inventories = append(inventories, InventoryDTO{
			ID:          item.ID,
			WarehouseID: item.WarehouseID,
			Quantity:    item.Quantity,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		})
	}

	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		SKU:         product.SKU,
		Price:       product.Price.StringFixed(2),
		Inventories: inventories,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the canonical catalog record. It deliberately carries no warehouse
// reference: a product can be stocked in any number of warehouses, and that
// association lives on Inventory rows.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	SKU         string          `gorm:"column:sku;not null;uniqueIndex:idx_products_sku"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Inventories []Inventory     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns the identity client-side so the model behaves the same
// on Postgres and the sqlite databases used in tests.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory records how much of a product sits in a given warehouse. The
// warehouse identifier is opaque to this service. One row per
// (product, warehouse) pair.
type Inventory struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_inventories_product_warehouse"`
	WarehouseID string    `gorm:"column:warehouse_id;not null;uniqueIndex:idx_inventories_product_warehouse"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Inventory) TableName() string {
	return "inventories"
}

func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

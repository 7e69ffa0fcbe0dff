package product

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	CreateProduct(context.Context, *models.Product) (*models.Product, error)
	FindByID(context.Context, uuid.UUID) (*models.Product, error)
	FindBySKU(context.Context, string) (*models.Product, error)
}

// InventoryRepository defines persistence operations for inventory rows.
type InventoryRepository interface {
	CreateInventory(context.Context, *models.Inventory) (*models.Inventory, error)
	ListInventoriesByProductID(context.Context, uuid.UUID) ([]models.Inventory, error)
}

// Repository wires together all product-related persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts a new product row and reports its assigned identity.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads the product with its inventory rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Inventories", func(db *gorm.DB) *gorm.DB {
			return db.Order("warehouse_id ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU loads the product holding the given business key, without associations.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateInventory inserts an inventory row for a product/warehouse pair.
func (r *Repository) CreateInventory(ctx context.Context, item *models.Inventory) (*models.Inventory, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListInventoriesByProductID returns every inventory row for the product.
func (r *Repository) ListInventoriesByProductID(ctx context.Context, productID uuid.UUID) ([]models.Inventory, error) {
	var rows []models.Inventory
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("warehouse_id ASC").
		Find(&rows).
		Error
	return rows, err
}

type productListQuery struct {
	Limit   int
	Cursor  *pagination.Cursor
	Filters ProductListFilters
}

// ListProductSummaries pages through products newest-first using a keyset cursor.
// The cursor arrives already parsed; callers own its validation.
func (r *Repository) ListProductSummaries(ctx context.Context, query productListQuery) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Limit)

	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(strings.Join([]string{
			"p.id",
			"p.name",
			"p.sku",
			"p.price",
			"p.created_at",
			"p.updated_at",
			"COALESCE((SELECT SUM(i.quantity) FROM inventories i WHERE i.product_id = p.id), 0) AS total_quantity",
			"(SELECT COUNT(1) FROM inventories i WHERE i.product_id = p.id) AS warehouse_count",
		}, ", "))

	if sku := strings.TrimSpace(query.Filters.SKU); sku != "" {
		qb = qb.Where("p.sku = ?", sku)
	}

	if query.Cursor != nil {
		qb = qb.Where("(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)", query.Cursor.CreatedAt, query.Cursor.CreatedAt, query.Cursor.ID)
	}

	qb = qb.Order("p.created_at DESC").Order("p.id DESC").Limit(limitWithBuffer)

	var records []productSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(resultRows))
	for _, record := range resultRows {
		summaries = append(summaries, record.toSummary())
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}

type productSummaryRecord struct {
	ID             uuid.UUID
	Name           string
	SKU            string
	Price          decimal.Decimal
	TotalQuantity  int
	WarehouseCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r productSummaryRecord) toSummary() ProductSummary {
	return ProductSummary{
		ID:             r.ID,
		Name:           r.Name,
		SKU:            r.SKU,
		Price:          r.Price.StringFixed(2),
		TotalQuantity:  r.TotalQuantity,
		WarehouseCount: r.WarehouseCount,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

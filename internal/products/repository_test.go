package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

func TestRepositoryCreateProduct_AssignsIdentity(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)

	product, err := repo.CreateProduct(context.Background(), &models.Product{
		Name:  "Widget",
		SKU:   "REP-001",
		Price: decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
}

func TestRepositoryCreateProduct_SurfacesUniqueViolation(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.CreateProduct(ctx, &models.Product{
		Name:  "Widget",
		SKU:   "REP-002",
		Price: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)

	_, err = repo.CreateProduct(ctx, &models.Product{
		Name:  "Widget Clone",
		SKU:   "REP-002",
		Price: decimal.RequireFromString("6.00"),
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""), "expected a unique violation, got %v", err)
}

func TestRepositoryFindBySKU(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateProduct(ctx, &models.Product{
		Name:  "Widget",
		SKU:   "REP-003",
		Price: decimal.RequireFromString("7.50"),
	})
	require.NoError(t, err)

	found, err := repo.FindBySKU(ctx, "REP-003")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindBySKU(ctx, "REP-MISSING")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindByID_PreloadsInventories(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product, err := repo.CreateProduct(ctx, &models.Product{
		Name:  "Widget",
		SKU:   "REP-004",
		Price: decimal.RequireFromString("3.25"),
	})
	require.NoError(t, err)

	for _, warehouse := range []string{"wh-b", "wh-a"} {
		_, err := repo.CreateInventory(ctx, &models.Inventory{
			ProductID:   product.ID,
			WarehouseID: warehouse,
			Quantity:    5,
		})
		require.NoError(t, err)
	}

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, found.Inventories, 2)
	assert.Equal(t, "wh-a", found.Inventories[0].WarehouseID)
	assert.Equal(t, "wh-b", found.Inventories[1].WarehouseID)
}

func TestRepositoryCreateInventory_RejectsDuplicateWarehouse(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product, err := repo.CreateProduct(ctx, &models.Product{
		Name:  "Widget",
		SKU:   "REP-005",
		Price: decimal.RequireFromString("2.00"),
	})
	require.NoError(t, err)

	_, err = repo.CreateInventory(ctx, &models.Inventory{
		ProductID:   product.ID,
		WarehouseID: "wh-east-1",
		Quantity:    1,
	})
	require.NoError(t, err)

	_, err = repo.CreateInventory(ctx, &models.Inventory{
		ProductID:   product.ID,
		WarehouseID: "wh-east-1",
		Quantity:    2,
	})
	require.Error(t, err)
	assert.True(t, db.IsIntegrityViolation(err))
}

func TestRepositoryListProductSummaries_AggregatesStock(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product, err := repo.CreateProduct(ctx, &models.Product{
		Name:  "Widget",
		SKU:   "REP-006",
		Price: decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)

	for i, warehouse := range []string{"wh-east-1", "wh-west-2"} {
		_, err := repo.CreateInventory(ctx, &models.Inventory{
			ProductID:   product.ID,
			WarehouseID: warehouse,
			Quantity:    (i + 1) * 10,
		})
		require.NoError(t, err)
	}

	result, err := repo.ListProductSummaries(ctx, productListQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)

	summary := result.Products[0]
	assert.Equal(t, "REP-006", summary.SKU)
	assert.Equal(t, "19.99", summary.Price)
	assert.Equal(t, 30, summary.TotalQuantity)
	assert.Equal(t, 2, summary.WarehouseCount)
	assert.Empty(t, result.NextCursor)
}

package product

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// Service exposes the product catalog operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
}

// CreateProductInput carries a validated create request into the service.
type CreateProductInput struct {
	Name            string
	SKU             string
	Price           decimal.Decimal
	WarehouseID     string
	InitialQuantity int
}

type service struct {
	dbClient *db.Client
	repo     *Repository
	logger   *logger.Logger
}

// NewService builds the product service on top of the shared DB client.
func NewService(dbClient *db.Client, logg *logger.Logger) Service {
	return &service{
		dbClient: dbClient,
		repo:     NewRepository(dbClient.DB()),
		logger:   logg,
	}
}

// CreateProduct inserts the product and its first inventory row in one
// transaction. A failure on either insert leaves no partial rows behind.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	ctx = s.logger.WithSKU(ctx, input.SKU)

	// Pre-check gives the common case a clean message. The unique index still
	// backstops the race where two requests pass the check concurrently.
	_, err := s.repo.FindBySKU(ctx, input.SKU)
	switch {
	case err == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDuplicate, "SKU must be unique")
	case stdErrors.Is(err, gorm.ErrRecordNotFound):
		// sku is free, proceed
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking sku uniqueness")
	}

	product := &models.Product{
		Name:  input.Name,
		SKU:   input.SKU,
		Price: input.Price,
	}

	txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.CreateProduct(ctx, product); err != nil {
			return err
		}

		inventory := &models.Inventory{
			ProductID:   product.ID,
			WarehouseID: input.WarehouseID,
			Quantity:    input.InitialQuantity,
		}
		if _, err := txRepo.CreateInventory(ctx, inventory); err != nil {
			return err
		}

		return nil
	})
	if txErr != nil {
		return nil, s.classifyWriteError(ctx, txErr)
	}

	ctx = s.logger.WithProductID(ctx, product.ID.String())
	s.logger.Info(ctx, "product created")

	created, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading created product")
	}

	return NewProductDTO(created), nil
}

// GetProduct loads a product with its inventory rows.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return NewProductDTO(product), nil
}

// ListProducts pages through the catalog, optionally filtered by sku.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	result, err := s.repo.ListProductSummaries(ctx, productListQuery{
		Limit:   input.Pagination.Limit,
		Cursor:  cursor,
		Filters: input.Filters,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return result, nil
}

// classifyWriteError maps storage failures from the create transaction onto
// the public error surface.
func (s *service) classifyWriteError(ctx context.Context, err error) error {
	switch {
	// The sku index is the only unique constraint reachable in the create
	// transaction: the inventory row is the first for a brand-new product.
	case db.IsUniqueViolation(err, ""):
		// Lost the race after the pre-check passed.
		return pkgerrors.Wrap(pkgerrors.CodeDuplicate, err, "SKU must be unique")
	case db.IsIntegrityViolation(err):
		s.logger.Warn(ctx, "product create rejected by integrity constraint")
		return pkgerrors.Wrap(pkgerrors.CodeIntegrity, err, "Database integrity error")
	default:
		s.logger.Error(ctx, "product create failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, err.Error())
	}
}

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	productsvc "github.com/stockroomhq/stockroom-backend/internal/products"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// CreateProduct handles POST /api/products.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createProductResponse{
			Message:   "Product created successfully",
			ProductID: product.ID,
		})
	}
}

// GetProduct handles GET /api/products/{productId}.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ListProducts handles GET /api/products.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), productsvc.ListProductsInput{
			Filters: productsvc.ProductListFilters{
				SKU: strings.TrimSpace(r.URL.Query().Get("sku")),
			},
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type createProductRequest struct {
	Name string `json:"name" validate:"required"`
	SKU  string `json:"sku" validate:"required"`
	// Pointer so required sees an absent price: validator does not apply
	// field-level tags to plain nested struct values.
	Price           *priceValue `json:"price" validate:"required"`
	WarehouseID     string      `json:"warehouse_id" validate:"required"`
	InitialQuantity *int        `json:"initial_quantity" validate:"omitempty,min=0"`
}

type createProductResponse struct {
	Message   string    `json:"message"`
	ProductID uuid.UUID `json:"product_id"`
}

func (r createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	if r.Price == nil || !r.Price.set {
		return productsvc.CreateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "Missing fields: price")
	}
	if r.Price.value.IsNegative() {
		return productsvc.CreateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	quantity := 0
	if r.InitialQuantity != nil {
		quantity = *r.InitialQuantity
	}

	return productsvc.CreateProductInput{
		Name:            strings.TrimSpace(r.Name),
		SKU:             strings.TrimSpace(r.SKU),
		Price:           r.Price.value,
		WarehouseID:     strings.TrimSpace(r.WarehouseID),
		InitialQuantity: quantity,
	}, nil
}

// priceValue accepts a JSON string or number and holds it as an exact
// decimal. Numbers are parsed from their literal text, never through a
// float, so "19.99" and 19.99 both land as 19.99.
type priceValue struct {
	value decimal.Decimal
	set   bool
}

func (p *priceValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
	}

	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid price %q", raw)
	}

	p.value = value
	p.set = true
	return nil
}

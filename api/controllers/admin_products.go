package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-backend/api/responses"
	"github.com/pawmart/pawmart-backend/api/validators"
	productsvc "github.com/pawmart/pawmart-backend/internal/products"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
	"github.com/pawmart/pawmart-backend/pkg/logger"
)

type createProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Brand         string   `json:"brand,omitempty"`
	Category      string   `json:"category" validate:"required"`
	Description   string   `json:"description,omitempty"`
	Price         string   `json:"price" validate:"required"`
	DiscountPrice *string  `json:"discount_price,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Stock         int      `json:"stock" validate:"min=0"`
	Tags          []string `json:"tags,omitempty"`
}

type updateProductRequest struct {
	Name          *string   `json:"name,omitempty"`
	Brand         *string   `json:"brand,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Price         *string   `json:"price,omitempty"`
	DiscountPrice *string   `json:"discount_price,omitempty"`
	ClearDiscount bool      `json:"clear_discount,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	Stock         *int      `json:"stock,omitempty" validate:"omitempty,min=0"`
	Tags          *[]string `json:"tags,omitempty"`
}

// AdminCreateProduct adds a catalog row.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct mutates a catalog row.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a catalog row.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func (p createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	price, err := parsePrice(p.Price)
	if err != nil {
		return productsvc.CreateProductInput{}, err
	}
	discount, err := parseOptionalPrice(p.DiscountPrice)
	if err != nil {
		return productsvc.CreateProductInput{}, err
	}
	return productsvc.CreateProductInput{
		Name:          p.Name,
		Brand:         p.Brand,
		Category:      p.Category,
		Description:   p.Description,
		Price:         price,
		DiscountPrice: discount,
		ImageURL:      p.ImageURL,
		Stock:         p.Stock,
		Tags:          p.Tags,
	}, nil
}

func (p updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		Tags:        p.Tags,
	}
	if p.Price != nil {
		price, err := parsePrice(*p.Price)
		if err != nil {
			return productsvc.UpdateProductInput{}, err
		}
		input.Price = &price
	}
	if p.ClearDiscount {
		var cleared *decimal.Decimal
		input.DiscountPrice = &cleared
	} else if p.DiscountPrice != nil {
		discount, err := parsePrice(*p.DiscountPrice)
		if err != nil {
			return productsvc.UpdateProductInput{}, err
		}
		value := &discount
		input.DiscountPrice = &value
	}
	return input, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	return value, nil
}

func parseOptionalPrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	value, err := parsePrice(*raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
	"github.com/pawmart/pawmart-backend/pkg/pagination"
)

// Service exposes the catalog read paths plus the admin write paths.
type Service interface {
	ListProducts(ctx context.Context, filter ListFilter) (*ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name          string
	Brand         string
	Category      string
	Description   string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	ImageURL      string
	Stock         int
	Tags          []string
}

// UpdateProductInput holds optional mutation values for a product. A non-nil
// DiscountPrice pointing at a nil decimal clears the discount.
type UpdateProductInput struct {
	Name          *string
	Brand         *string
	Category      *string
	Description   *string
	Price         *decimal.Decimal
	DiscountPrice **decimal.Decimal
	ImageURL      *string
	Stock         *int
	Tags          *[]string
}

type service struct {
	repo *Repository
}

// NewService constructs the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) (*ProductListResult, error) {
	if _, err := pagination.ParseCursor(filter.Cursor); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	rows, next, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	dtos := make([]ProductDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toDTO(row)
	}
	return &ProductListResult{Products: dtos, NextCursor: next}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := toDTO(*row)
	return &dto, nil
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	raw, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return normalizeCategories(raw), nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		Brand:         strings.TrimSpace(input.Brand),
		Category:      strings.TrimSpace(input.Category),
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		ImageURL:      strings.TrimSpace(input.ImageURL),
		Stock:         input.Stock,
		Tags:          input.Tags,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	dto := toDTO(*created)
	return &dto, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := applyUpdate(product, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	dto := toDTO(*updated)
	return &dto, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func validateCreate(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product category required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.DiscountPrice != nil && input.DiscountPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount price must not be negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	return nil
}

func applyUpdate(product *models.Product, input UpdateProductInput) error {
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "product name required")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "product category required")
		}
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.DiscountPrice != nil {
		if *input.DiscountPrice != nil && (*input.DiscountPrice).IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount price must not be negative")
		}
		product.DiscountPrice = *input.DiscountPrice
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
		}
		product.Stock = *input.Stock
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	return nil
}

// normalizeCategories strips display-only qualifiers (anything parenthesized)
// and trims whitespace, deduplicating the result while keeping sorted order.
func normalizeCategories(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, value := range raw {
		normalized := normalizeCategory(value)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

func normalizeCategory(value string) string {
	if idx := strings.Index(value, "("); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/domain"
	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/inventory"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

const (
	maxProductNameLength = 100
	priceScale           = 2
)

// maxPrice límite de NUMERIC(12,2).
var maxPrice = decimal.RequireFromString("9999999999.99")

// ProductUseCase casos de uso para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	defaultMin int
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso. defaultMin es el mínimo aplicado cuando no se informa.
func NewProductUseCase(repo repository.ProductRepository, defaultMin int) *ProductUseCase {
	if defaultMin < 0 {
		defaultMin = entity.DefaultMinQuantity
	}
	return &ProductUseCase{repo: repo, defaultMin: defaultMin, now: time.Now}
}

// Create crea un nuevo producto. Requiere sesión.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if err := inventory.ValidateStockLevel("quantity", in.Quantity); err != nil {
		return nil, err
	}
	minQty := uc.defaultMin
	if in.MinQuantity != nil {
		minQty = *in.MinQuantity
	}
	if err := inventory.ValidateStockLevel("min_quantity", minQty); err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		Name:        name,
		Price:       in.Price,
		Quantity:    in.Quantity,
		MinQuantity: minQty,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return dto.ToProductResponse(product), nil
}

// Update edita nombre, precio y mínimo. Requiere administrador; el stock no se edita por aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		name, err := validateName(*in.Name)
		if err != nil {
			return nil, err
		}
		product.Name = name
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		product.Price = *in.Price
	}
	if in.MinQuantity != nil {
		if err := inventory.ValidateStockLevel("min_quantity", *in.MinQuantity); err != nil {
			return nil, err
		}
		product.MinQuantity = *in.MinQuantity
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List lista todos los productos, cada uno marcado con low_stock.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError("name", "el nombre del producto es obligatorio")
	}
	if utf8.RuneCountInString(name) > maxProductNameLength {
		return "", domain.NewValidationError("name", "el nombre admite hasta 100 caracteres")
	}
	return name, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewValidationError("price", "el precio no puede ser negativo")
	}
	if price.GreaterThan(maxPrice) {
		return domain.NewValidationError("price", "el precio supera el máximo permitido")
	}
	if !price.Equal(price.Truncate(priceScale)) {
		return domain.NewValidationError("price", "el precio admite hasta 2 decimales")
	}
	return nil
}

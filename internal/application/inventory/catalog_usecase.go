package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/logbook-api/internal/application/dto"
	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
	"github.com/jhoicas/logbook-api/internal/domain/inventory"
)

// CatalogUseCase alta y consulta de artículos de inventario. El stock lo descuenta la verificación.
type CatalogUseCase struct {
	repo Catalog
	now  func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo Catalog) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, now: time.Now}
}

// Create registra un artículo nuevo; el estado se deriva del stock inicial.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	key := entity.NewItemKey(in.Category, in.SubCategory, in.Brand, in.Model)
	item := &entity.InventoryItem{
		ID:               uuid.New().String(),
		Category:         key.Category,
		SubCategory:      key.SubCategory,
		Brand:            key.Brand,
		Model:            key.Model,
		QuantityInStock:  in.QuantityInStock,
		LowQuantityAlert: in.LowQuantityAlert,
		Status:           inventory.StatusFor(in.QuantityInStock, in.LowQuantityAlert),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return ToItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToItemResponse(item), nil
}

// List lista artículos con paginación.
func (uc *CatalogUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.InventoryItemListResponse, error) {
	if err := page.Check(); err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	list, err := uc.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToItemResponse(it))
	}
	return &dto.InventoryItemListResponse{
		Success:    true,
		Data:       items,
		Pagination: dto.NewPagination(total, page),
	}, nil
}

// ToItemResponse convierte la entidad en su representación pública.
func ToItemResponse(it *entity.InventoryItem) *dto.InventoryItemResponse {
	if it == nil {
		return nil
	}
	return &dto.InventoryItemResponse{
		ID:               it.ID,
		Category:         it.Category,
		SubCategory:      it.SubCategory,
		Brand:            it.Brand,
		Model:            it.Model,
		QuantityInStock:  it.QuantityInStock,
		LowQuantityAlert: it.LowQuantityAlert,
		Status:           string(it.Status),
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
	}
}

package repository

import (
	"context"

	"github.com/jhoicas/logbook-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto para consultar/actualizar stock por artículo.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetByKeyForUpdate busca por (categoría, subcategoría, marca, modelo) y bloquea la fila; nil si no existe.
	GetByKeyForUpdate(ctx context.Context, key entity.ItemKey) (*entity.InventoryItem, error)
	UpdateStock(ctx context.Context, id string, quantity int, status entity.StockStatus) error
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error)
	Count(ctx context.Context) (int, error)
}

package inventory

import (
	"github.com/jhoicas/logbook-api/internal/domain/repository"
)

// Catalog es el puerto de persistencia que usa el catálogo de inventario.
type Catalog = repository.InventoryItemRepository

package entity

import (
	"strings"
	"time"
)

// StockStatus estado derivado del stock frente al umbral de alerta.
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "outOfStock"
	StockStatusLow        StockStatus = "lowStock"
	StockStatusIn         StockStatus = "inStock"
)

// ItemKey identifica un artículo de inventario.
type ItemKey struct {
	Category    string
	SubCategory string
	Brand       string
	Model       string
}

// NewItemKey arma la clave sin espacios sobrantes; el catálogo y los reportes de daños la comparan así.
func NewItemKey(category, subCategory, brand, model string) ItemKey {
	return ItemKey{
		Category:    strings.TrimSpace(category),
		SubCategory: strings.TrimSpace(subCategory),
		Brand:       strings.TrimSpace(brand),
		Model:       strings.TrimSpace(model),
	}
}

// InventoryItem stock de un artículo (categoría/subcategoría/marca/modelo).
type InventoryItem struct {
	ID               string
	Category         string
	SubCategory      string
	Brand            string
	Model            string
	QuantityInStock  int
	LowQuantityAlert int
	Status           StockStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Key devuelve la clave compuesta del artículo.
func (i *InventoryItem) Key() ItemKey {
	return NewItemKey(i.Category, i.SubCategory, i.Brand, i.Model)
}

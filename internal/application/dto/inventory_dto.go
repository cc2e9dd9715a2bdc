package dto

import "time"

// CreateInventoryItemRequest body para POST /api/inventory.
type CreateInventoryItemRequest struct {
	Category         string `json:"category" validate:"required"`
	SubCategory      string `json:"subCategory" validate:"required"`
	Brand            string `json:"brand" validate:"required"`
	Model            string `json:"model" validate:"required"`
	QuantityInStock  int    `json:"quantityInStock" validate:"gte=0,lte=2147483647"`
	LowQuantityAlert int    `json:"lowQuantityAlert" validate:"gte=0,lte=2147483647"`
}

// InventoryItemResponse representación pública de un artículo.
type InventoryItemResponse struct {
	ID               string    `json:"_id"`
	Category         string    `json:"category"`
	SubCategory      string    `json:"subCategory"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	QuantityInStock  int       `json:"quantityInStock"`
	LowQuantityAlert int       `json:"lowQuantityAlert"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// InventoryItemEnvelope respuesta de un solo artículo.
type InventoryItemEnvelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    *InventoryItemResponse `json:"data"`
}

// InventoryItemListResponse respuesta de GET /api/inventory.
type InventoryItemListResponse struct {
	Success    bool                    `json:"success"`
	Data       []InventoryItemResponse `json:"data"`
	Pagination Pagination              `json:"pagination"`
}

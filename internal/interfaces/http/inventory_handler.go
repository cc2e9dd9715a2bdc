package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logbook-api/internal/application/dto"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

// InventoryCatalog la implementa *inventory.CatalogUseCase.
type InventoryCatalog interface {
	Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	GetByID(ctx context.Context, id string) (*dto.InventoryItemResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.InventoryItemListResponse, error)
}

// InventoryHandler maneja el catálogo de artículos (protegido).
type InventoryHandler struct {
	catalog InventoryCatalog
	log     *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(catalog InventoryCatalog, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{catalog: catalog, log: log.Component("http.inventory")}
}

// Create godoc
// @Summary      Registrar artículo de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "Artículo"
// @Success      201   {object}  dto.InventoryItemEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := decodeStrict(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.catalog.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InventoryItemEnvelope{Success: true, Message: "Inventory item created successfully", Data: out})
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.InventoryItemEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.catalog.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.InventoryItemEnvelope{Success: true, Data: out})
}

// List godoc
// @Summary      Listar artículos de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.InventoryItemListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.catalog.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

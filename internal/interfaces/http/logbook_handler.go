package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logbook-api/internal/application/dto"
	"github.com/jhoicas/logbook-api/internal/application/logbook"
	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

// LogBookStore operaciones CRUD que consume el handler; la implementa *logbook.StoreUseCase.
type LogBookStore interface {
	Create(ctx context.Context, in dto.CreateLogEntryRequest) (*dto.LogEntryResponse, error)
	Get(ctx context.Context, id string) (*dto.LogEntryResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.LogEntryListResponse, error)
	Patch(ctx context.Context, in dto.PatchLogEntryRequest) (*dto.LogEntryResponse, error)
	Delete(ctx context.Context, id string) error
}

// LogBookVerifier la implementa *logbook.VerifyUseCase.
type LogBookVerifier interface {
	Verify(ctx context.Context, id, verifiedBy string, in dto.VerifyLogEntryRequest) (*logbook.VerificationResult, error)
}

// ReceiptDownloader la implementa *logbook.ReceiptUseCase.
type ReceiptDownloader interface {
	Download(ctx context.Context, id string) ([]byte, string, error)
}

// LogBookHandler maneja las peticiones HTTP de la bitácora (protegido).
type LogBookHandler struct {
	store    LogBookStore
	verifier LogBookVerifier
	receipts ReceiptDownloader
	log      *logger.Logger
}

// NewLogBookHandler construye el handler.
func NewLogBookHandler(store LogBookStore, verifier LogBookVerifier, receipts ReceiptDownloader, log *logger.Logger) *LogBookHandler {
	return &LogBookHandler{store: store, verifier: verifier, receipts: receipts, log: log.Component("http.logbook")}
}

// VerifyInventorySummary resumen del descuento de inventario aplicado al verificar.
type VerifyInventorySummary struct {
	Adjustments []logbook.StockAdjustment `json:"adjustments"`
	Untracked   int                       `json:"untracked"`
	Failed      int                       `json:"failed"`
}

// VerifyResponse respuesta de PUT /api/logbook/{id}.
type VerifyResponse struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	Data      *dto.LogEntryResponse  `json:"data"`
	Inventory VerifyInventorySummary `json:"inventory"`
}

// List godoc
// @Summary      Listar registros de bitácora
// @Tags         logbook
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.LogEntryListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/logbook [get]
func (h *LogBookHandler) List(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.store.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear registro de bitácora
// @Tags         logbook
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLogEntryRequest  true  "Datos del registro"
// @Success      201   {object}  dto.LogEntryEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/logbook [post]
func (h *LogBookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLogEntryRequest
	if err := decodeStrict(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.store.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LogEntryEnvelope{
		Success: true, Message: "Log book entry created successfully", Data: out,
	})
}

// Patch godoc
// @Summary      Modificar registro de bitácora
// @Description  Mezcla los campos enviados; _id identifica el registro. status y grandTotal no se aceptan.
// @Tags         logbook
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PatchLogEntryRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.LogEntryEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/logbook [patch]
func (h *LogBookHandler) Patch(c *fiber.Ctx) error {
	var in dto.PatchLogEntryRequest
	if err := decodeStrict(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.store.Patch(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.LogEntryEnvelope{Success: true, Message: "Log book entry updated successfully", Data: out})
}

// Delete godoc
// @Summary      Eliminar registro de bitácora
// @Tags         logbook
// @Security     Bearer
// @Produce      json
// @Param        id   query  string  true  "ID del registro"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/logbook [delete]
func (h *LogBookHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return respondError(c, h.log, domain.NewValidationError("id", "required"))
	}
	if err := h.store.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Log book entry deleted successfully"})
}

// GetByID godoc
// @Summary      Obtener registro por ID
// @Tags         logbook
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.LogEntryEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/logbook/{id} [get]
func (h *LogBookHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.store.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.LogEntryEnvelope{Success: true, Data: out})
}

// Verify godoc
// @Summary      Verificar registro
// @Description  Descuenta inventario por daños/pérdidas, calcula el gran total y pasa el registro a Verified.
// @Tags         logbook
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del registro"
// @Param        body  body  dto.VerifyLogEntryRequest  false "Datos finales del registro"
// @Success      200   {object}  VerifyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/logbook/{id} [put]
func (h *LogBookHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyLogEntryRequest
	if err := decodeLenient(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	res, err := h.verifier.Verify(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	adjustments := res.Adjustments
	if adjustments == nil {
		adjustments = []logbook.StockAdjustment{}
	}
	return c.JSON(VerifyResponse{
		Success: true,
		Message: "Log book entry verified and inventory updated successfully",
		Data:    logbook.ToResponse(res.Entry),
		Inventory: VerifyInventorySummary{
			Adjustments: adjustments,
			Untracked:   res.Untracked,
			Failed:      res.Failed,
		},
	})
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         logbook
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/logbook/{id}/receipt [get]
func (h *LogBookHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

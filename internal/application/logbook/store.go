package logbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/logbook-api/internal/application/dto"
	"github.com/jhoicas/logbook-api/internal/domain"
	domainlogbook "github.com/jhoicas/logbook-api/internal/domain/logbook"
	"github.com/jhoicas/logbook-api/internal/domain/repository"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

// StoreUseCase casos de uso CRUD de la bitácora. Status solo cambia vía VerifyUseCase.
type StoreUseCase struct {
	repo repository.LogEntryRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.LogEntryRepository, log *logger.Logger) *StoreUseCase {
	return &StoreUseCase{repo: repo, log: log.Component("logbook.store"), now: time.Now}
}

// Create valida y persiste un registro nuevo en estado Issued.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateLogEntryRequest) (*dto.LogEntryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	entry := fromCreateRequest(in)
	if err := domainlogbook.Validate(entry); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByBookingID(ctx, entry.BookingID)
	if err != nil {
		return nil, persistence(err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.now()
	entry.ID = uuid.New().String()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if err := uc.repo.Create(ctx, entry); err != nil {
		return nil, persistence(err)
	}
	uc.log.Info().Str("log_id", entry.ID).Str("booking_id", entry.BookingID).Msg("registro de bitácora creado")
	return ToResponse(entry), nil
}

// Get obtiene un registro por ID.
func (uc *StoreUseCase) Get(ctx context.Context, id string) (*dto.LogEntryResponse, error) {
	entry, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistence(err)
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return ToResponse(entry), nil
}

// List lista registros del más reciente al más antiguo.
func (uc *StoreUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.LogEntryListResponse, error) {
	if err := page.Check(); err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	list, err := uc.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, persistence(err)
	}
	items := make([]dto.LogEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *ToResponse(e))
	}
	return &dto.LogEntryListResponse{
		Success:    true,
		Data:       items,
		Pagination: dto.NewPagination(total, page),
	}, nil
}

// Patch mezcla los campos enviados sobre el registro existente.
// Si el registro está verificado se recalcula el gran total; el estado no cambia.
func (uc *StoreUseCase) Patch(ctx context.Context, in dto.PatchLogEntryRequest) (*dto.LogEntryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	entry, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, persistence(err)
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	previousBooking := entry.BookingID
	applyFields(entry, in.LogEntryFields)
	if err := domainlogbook.Validate(entry); err != nil {
		return nil, err
	}
	if entry.IsVerified() {
		entry.GrandTotal = domainlogbook.GrandTotal(entry.TotalAmount, entry.ElectricityReadings, entry.TotalRecoveryAmount)
		if err := domainlogbook.CheckGrandTotal(entry.GrandTotal); err != nil {
			return nil, err
		}
	}
	if entry.BookingID != previousBooking {
		other, err := uc.repo.GetByBookingID(ctx, entry.BookingID)
		if err != nil {
			return nil, persistence(err)
		}
		if other != nil && other.ID != entry.ID {
			return nil, domain.ErrDuplicate
		}
	}
	entry.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, entry); err != nil {
		return nil, persistence(err)
	}
	return ToResponse(entry), nil
}

// Delete elimina un registro por ID.
func (uc *StoreUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return persistence(err)
	}
	uc.log.Info().Str("log_id", id).Msg("registro de bitácora eliminado")
	return nil
}

// persistence deja pasar errores de dominio y marca el resto como fallo de persistencia.
func persistence(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrPersistence):
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}

package repository

import (
	"context"

	"github.com/jhoicas/logbook-api/internal/domain/entity"
)

// LogEntryRepository define el puerto de persistencia para la bitácora.
// GetByID/GetByBookingID/GetForUpdate devuelven (nil, nil) si no existe.
type LogEntryRepository interface {
	Create(ctx context.Context, entry *entity.LogEntry) error
	GetByID(ctx context.Context, id string) (*entity.LogEntry, error)
	GetByBookingID(ctx context.Context, bookingID string) (*entity.LogEntry, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.LogEntry, error)
	// List ordena por created_at descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.LogEntry, error)
	Count(ctx context.Context) (int, error)
	// Update devuelve domain.ErrNotFound si no hay fila y domain.ErrDuplicate si choca bookingId.
	Update(ctx context.Context, entry *entity.LogEntry) error
	Delete(ctx context.Context, id string) error
}

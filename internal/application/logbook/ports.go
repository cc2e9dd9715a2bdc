package logbook

import (
	"context"
	"time"

	"github.com/jhoicas/logbook-api/internal/domain/entity"
	"github.com/jhoicas/logbook-api/internal/domain/repository"
)

// SavepointFunc ejecuta fn dentro de un savepoint de la transacción en curso.
// Si fn falla solo se deshace lo hecho dentro del savepoint.
type SavepointFunc func(ctx context.Context, fn func(itemRepo repository.InventoryItemRepository) error) error

// TxRunner ejecuta la verificación dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		logRepo repository.LogEntryRepository,
		itemRepo repository.InventoryItemRepository,
		savepoint SavepointFunc,
	) error) error
}

// EventPublisher publica eventos de dominio hacia el broker. Los errores no abortan la operación.
type EventPublisher interface {
	PublishLogEntryVerified(ctx context.Context, ev LogEntryVerifiedEvent) error
	PublishLowStock(ctx context.Context, ev InventoryLowStockEvent) error
}

// VerificationRecorder registra métricas del proceso de verificación.
type VerificationRecorder interface {
	ObserveVerification(outcome string, elapsed time.Duration)
	ObserveStockDeduction(status entity.StockStatus)
}

// Resultados de verificación para métricas.
const (
	OutcomeVerified        = "verified"
	OutcomeNotFound        = "not_found"
	OutcomeAlreadyVerified = "already_verified"
	OutcomeInvalid         = "invalid"
	OutcomeFailed          = "failed"
)

// ReceiptGenerator genera el comprobante PDF de un registro.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, entry *entity.LogEntry) ([]byte, error)
}

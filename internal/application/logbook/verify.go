package logbook

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/logbook-api/internal/application/dto"
	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
	"github.com/jhoicas/logbook-api/internal/domain/inventory"
	domainlogbook "github.com/jhoicas/logbook-api/internal/domain/logbook"
	"github.com/jhoicas/logbook-api/internal/domain/repository"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

// StockAdjustment descuento aplicado a un artículo durante la verificación.
type StockAdjustment struct {
	ItemID           string `json:"itemId"`
	Category         string `json:"category"`
	SubCategory      string `json:"subCategory"`
	Brand            string `json:"brand"`
	Model            string `json:"model"`
	Claimed          int    `json:"claimed"`
	Before           int    `json:"before"`
	After            int    `json:"after"`
	LowQuantityAlert int    `json:"lowQuantityAlert"`
	Status           string `json:"status"`
}

// VerificationResult registro verificado más el detalle de inventario.
type VerificationResult struct {
	Entry       *entity.LogEntry
	Adjustments []StockAdjustment
	Untracked   int // artículos reportados sin registro de inventario
	Failed      int // artículos cuyo descuento falló y se omitió
}

// VerifyUseCase cierra el ciclo de un registro: descuenta inventario por daños/pérdidas,
// calcula el gran total y pasa el estado a Verified, todo en una sola transacción.
type VerifyUseCase struct {
	txRunner  TxRunner
	publisher EventPublisher
	recorder  VerificationRecorder
	log       *logger.Logger
	now       func() time.Time
}

// NewVerifyUseCase construye el caso de uso. publisher y recorder pueden ser nil.
func NewVerifyUseCase(txRunner TxRunner, publisher EventPublisher, recorder VerificationRecorder, log *logger.Logger) *VerifyUseCase {
	return &VerifyUseCase{
		txRunner:  txRunner,
		publisher: publisher,
		recorder:  recorder,
		log:       log.Component("logbook.verify"),
		now:       time.Now,
	}
}

// Verify aplica la verificación. Un artículo cuyo descuento falla se registra en el log y se omite
// (su savepoint se deshace); si falla la persistencia del registro se deshace todo.
func (uc *VerifyUseCase) Verify(ctx context.Context, id, verifiedBy string, in dto.VerifyLogEntryRequest) (*VerificationResult, error) {
	start := uc.now()
	result, err := uc.verify(ctx, id, verifiedBy, in)
	uc.observe(outcomeOf(err), uc.now().Sub(start))
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, result)
	return result, nil
}

func (uc *VerifyUseCase) verify(ctx context.Context, id, verifiedBy string, in dto.VerifyLogEntryRequest) (*VerificationResult, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var damages []entity.DamageLoss
	if in.DamageLossSummary != nil {
		damages = toDamages(*in.DamageLossSummary)
	}

	var result *VerificationResult
	err := uc.txRunner.Run(ctx, func(
		logRepo repository.LogEntryRepository,
		_ repository.InventoryItemRepository,
		savepoint SavepointFunc,
	) error {
		entry, err := logRepo.GetForUpdate(ctx, id)
		if err != nil {
			return persistence(err)
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.IsVerified() {
			return domain.ErrAlreadyVerified
		}
		applyFields(entry, in.LogEntryFields)
		if err := domainlogbook.Validate(entry); err != nil {
			return err
		}

		res := &VerificationResult{}
		for _, d := range damages {
			adj, err := uc.deduct(ctx, savepoint, d)
			if err != nil {
				res.Failed++
				uc.log.Warn().Err(err).
					Str("log_id", entry.ID).
					Str("category", d.Category).Str("sub_category", d.SubCategory).
					Str("brand", d.Brand).Str("model", d.Model).
					Msg("no se pudo descontar inventario; se omite el artículo")
				continue
			}
			if adj == nil {
				res.Untracked++
				continue
			}
			res.Adjustments = append(res.Adjustments, *adj)
		}

		now := uc.now()
		entry.GrandTotal = domainlogbook.GrandTotal(entry.TotalAmount, entry.ElectricityReadings, entry.TotalRecoveryAmount)
		if err := domainlogbook.CheckGrandTotal(entry.GrandTotal); err != nil {
			return err
		}
		entry.Status = entity.LogStatusVerified
		entry.VerifiedAt = &now
		entry.VerifiedBy = verifiedBy
		entry.UpdatedAt = now
		if err := logRepo.Update(ctx, entry); err != nil {
			return persistence(err)
		}
		res.Entry = entry
		result = res
		return nil
	})
	if err != nil {
		return nil, persistence(err)
	}

	uc.log.Info().
		Str("log_id", result.Entry.ID).
		Str("booking_id", result.Entry.BookingID).
		Str("grand_total", result.Entry.GrandTotal.StringFixed(2)).
		Int("adjusted", len(result.Adjustments)).
		Int("untracked", result.Untracked).
		Int("failed", result.Failed).
		Msg("registro verificado")
	return result, nil
}

// deduct descuenta un artículo dentro de su propio savepoint. Devuelve (nil, nil) si no se rastrea.
func (uc *VerifyUseCase) deduct(ctx context.Context, savepoint SavepointFunc, d entity.DamageLoss) (*StockAdjustment, error) {
	var adj *StockAdjustment
	err := savepoint(ctx, func(itemRepo repository.InventoryItemRepository) error {
		item, err := itemRepo.GetByKeyForUpdate(ctx, d.Key())
		if err != nil {
			return err
		}
		if item == nil {
			return nil
		}
		after := inventory.DeductStock(item.QuantityInStock, d.Quantity)
		status := inventory.StatusFor(after, item.LowQuantityAlert)
		if err := itemRepo.UpdateStock(ctx, item.ID, after, status); err != nil {
			return err
		}
		adj = &StockAdjustment{
			ItemID:           item.ID,
			Category:         item.Category,
			SubCategory:      item.SubCategory,
			Brand:            item.Brand,
			Model:            item.Model,
			Claimed:          d.Quantity,
			Before:           item.QuantityInStock,
			After:            after,
			LowQuantityAlert: item.LowQuantityAlert,
			Status:           string(status),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if adj != nil && uc.recorder != nil {
		uc.recorder.ObserveStockDeduction(entity.StockStatus(adj.Status))
	}
	return adj, nil
}

// publish emite los eventos después del commit. Los fallos solo se registran.
func (uc *VerifyUseCase) publish(ctx context.Context, res *VerificationResult) {
	if uc.publisher == nil {
		return
	}
	e := res.Entry
	verifiedAt := uc.now().UTC()
	if e.VerifiedAt != nil {
		verifiedAt = e.VerifiedAt.UTC()
	}
	ev := LogEntryVerifiedEvent{
		LogEntryID:   e.ID,
		BookingID:    e.BookingID,
		CustomerName: e.CustomerName,
		PropertyType: e.PropertyType,
		GrandTotal:   e.GrandTotal.StringFixed(2),
		DamageTotal:  domainlogbook.DamageTotal(e.DamageLossSummary).StringFixed(2),
		DamageCount:  len(e.DamageLossSummary),
		VerifiedBy:   e.VerifiedBy,
		VerifiedAt:   verifiedAt.Format(time.RFC3339),
	}
	if err := uc.publisher.PublishLogEntryVerified(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("log_id", e.ID).Msg("no se pudo publicar logbook.verified")
	}
	for _, adj := range res.Adjustments {
		if !inventory.NeedsRestock(entity.StockStatus(adj.Status)) {
			continue
		}
		low := InventoryLowStockEvent{
			ItemID:           adj.ItemID,
			Category:         adj.Category,
			SubCategory:      adj.SubCategory,
			Brand:            adj.Brand,
			Model:            adj.Model,
			QuantityInStock:  adj.After,
			LowQuantityAlert: adj.LowQuantityAlert,
			Status:           adj.Status,
			LogEntryID:       e.ID,
			OccurredAt:       verifiedAt.Format(time.RFC3339),
		}
		if err := uc.publisher.PublishLowStock(ctx, low); err != nil {
			uc.log.Warn().Err(err).Str("item_id", adj.ItemID).Msg("no se pudo publicar inventory.low_stock")
		}
	}
}

func (uc *VerifyUseCase) observe(outcome string, elapsed time.Duration) {
	if uc.recorder != nil {
		uc.recorder.ObserveVerification(outcome, elapsed)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeVerified
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrAlreadyVerified):
		return OutcomeAlreadyVerified
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrDuplicate):
		return OutcomeInvalid
	default:
		return OutcomeFailed
	}
}

package logbook

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un registro, en cualquier estado.
type ReceiptUseCase struct {
	repo      repository.LogEntryRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(repo repository.LogEntryRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{repo: repo, generator: generator}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) Download(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", persistence(err)
	}
	if e == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateReceipt(ctx, e)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}
	return pdfBytes, "logbook_" + safeFilename(e.BookingID) + ".pdf", nil
}

// safeFilename deja solo caracteres seguros para Content-Disposition.
func safeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "entry"
	}
	return b.String()
}

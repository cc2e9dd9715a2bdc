package inventory

import "github.com/jhoicas/logbook-api/internal/domain/entity"

// DeductStock resta la cantidad reportada sin bajar de cero.
// NuevoStock = max(0, StockActual - CantReportada)
func DeductStock(current, claimed int) int {
	if claimed < 0 {
		claimed = 0
	}
	n := current - claimed
	if n < 0 {
		return 0
	}
	return n
}

// StatusFor deriva el estado del stock: agotado en 0, bajo si no supera el umbral de alerta.
func StatusFor(quantity, lowQuantityAlert int) entity.StockStatus {
	switch {
	case quantity <= 0:
		return entity.StockStatusOutOfStock
	case quantity <= lowQuantityAlert:
		return entity.StockStatusLow
	default:
		return entity.StockStatusIn
	}
}

// NeedsRestock indica si el estado amerita alerta de reposición.
func NeedsRestock(status entity.StockStatus) bool {
	return status == entity.StockStatusLow || status == entity.StockStatusOutOfStock
}

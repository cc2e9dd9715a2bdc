// Package logbook contiene las reglas de negocio de la bitácora de entregas.
package logbook

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
)

// MaxMoney cota exclusiva de los montos guardados en columnas NUMERIC(14,2).
var MaxMoney = decimal.New(1, 12)

// Money lleva un monto a la escala con que se persiste.
func Money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// GrandTotal = TotalAmount + Σ lecturas eléctricas + TotalRecoveryAmount, redondeado a 2 decimales.
// Los valores ausentes llegan como decimal.Zero.
func GrandTotal(totalAmount decimal.Decimal, readings []entity.ElectricityReading, recovery decimal.Decimal) decimal.Decimal {
	sum := totalAmount.Add(recovery)
	for _, r := range readings {
		sum = sum.Add(r.Total)
	}
	return Money(sum)
}

// DamageTotal suma los montos de daños y pérdidas reportados.
func DamageTotal(items []entity.DamageLoss) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range items {
		sum = sum.Add(d.Amount)
	}
	return sum.Round(2)
}

// CheckGrandTotal rechaza un gran total que no cabe en la columna.
func CheckGrandTotal(total decimal.Decimal) error {
	if total.Abs().GreaterThanOrEqual(MaxMoney) {
		return domain.NewValidationError("grandTotal", "fuera de rango")
	}
	return nil
}

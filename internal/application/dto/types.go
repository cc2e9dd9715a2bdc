package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainlogbook "github.com/jhoicas/logbook-api/internal/domain/logbook"
)

// Límites de los montos: caben en NUMERIC(14,2) y evitan exponentes que disparen la aritmética.
const (
	maxAmountText  = 32
	MaxAmountScale = 6
)

// MaxAmount cota exclusiva del valor absoluto de cualquier monto.
var MaxAmount = domainlogbook.MaxMoney

// Amount decimal que acepta número JSON o string numérico; null y "" equivalen a 0.
// Se serializa como número JSON.
type Amount struct {
	decimal.Decimal
}

// NewAmount envuelve un decimal.
func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		a.Decimal = decimal.Zero
		return nil
	}
	if len(s) > maxAmountText {
		return fmt.Errorf("monto inválido: más de %d caracteres", maxAmountText)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("monto inválido %q", s)
	}
	// El exponente se revisa antes de comparar o redondear: "1e20000000" expande el coeficiente.
	if exp := d.Exponent(); exp > 12 || exp < -maxAmountText {
		return fmt.Errorf("monto fuera de rango %q", s)
	}
	if d.Abs().GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("monto fuera de rango %q", s)
	}
	if !d.Equal(d.Truncate(MaxAmountScale)) {
		return fmt.Errorf("monto inválido %q: más de %d decimales", s, MaxAmountScale)
	}
	a.Decimal = d
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

const dateLayout = "2006-01-02"

// Date fecha que acepta "2006-01-02" o RFC3339.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha inválida: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Ptr devuelve nil si la fecha es cero.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.Time.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// DateFrom convierte un *time.Time de entidad en *Date.
func DateFrom(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}

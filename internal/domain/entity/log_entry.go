package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogStatus estado del registro de bitácora. Solo avanza Issued -> Verified.
type LogStatus string

const (
	LogStatusIssued   LogStatus = "Issued"
	LogStatusVerified LogStatus = "Verified"
)

// PropertyTypeHall exige eventType al crear o modificar el registro.
const PropertyTypeHall = "hall"

// DateRange rango de fechas del evento (ambos extremos opcionales).
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// IssuedItem artículo entregado al cliente al inicio del evento.
type IssuedItem struct {
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Quantity    int    `json:"quantity"`
	Condition   string `json:"condition"`
	Remarks     string `json:"remarks,omitempty"`
}

// ElectricityReading lectura de medidor; Total es lo que se cobra por esa lectura.
type ElectricityReading struct {
	Type          string          `json:"type"`
	StartReading  decimal.Decimal `json:"startReading"`
	EndReading    decimal.Decimal `json:"endReading"`
	UnitsConsumed decimal.Decimal `json:"unitsConsumed"`
	UnitType      string          `json:"unitType"`
	CostPerUnit   decimal.Decimal `json:"costPerUnit"`
	Total         decimal.Decimal `json:"total"`
	Remarks       string          `json:"remarks,omitempty"`
}

// DamageLoss artículo reportado dañado o perdido; descuenta stock al verificar.
type DamageLoss struct {
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Quantity    int             `json:"quantity"`
	Condition   string          `json:"condition"`
	Remarks     string          `json:"remarks,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// Key devuelve la clave de inventario del artículo reportado.
func (d DamageLoss) Key() ItemKey {
	return NewItemKey(d.Category, d.SubCategory, d.Brand, d.Model)
}

// LogEntry representa un ciclo de entrega/devolución de artículos para una reserva.
// Las listas se guardan como JSONB; GrandTotal y Status solo los cambia la verificación.
type LogEntry struct {
	ID                  string
	BookingID           string
	CustomerName        string
	MobileNo            string
	PropertyType        string
	EventType           string
	DateRange           DateRange
	CheckInTime         string
	Notes               string
	ItemsIssued         []IssuedItem
	ElectricityReadings []ElectricityReading
	TotalAmount         decimal.Decimal
	TotalRecoveryAmount decimal.Decimal
	GrandTotal          decimal.Decimal
	DamageLossSummary   []DamageLoss
	Status              LogStatus
	VerifiedAt          *time.Time
	VerifiedBy          string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsVerified indica si el registro ya cerró su ciclo.
func (e *LogEntry) IsVerified() bool { return e.Status == LogStatusVerified }

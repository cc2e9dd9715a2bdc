package dto

import (
	"time"
)

// IssuedItemDTO artículo entregado.
type IssuedItemDTO struct {
	Category    string `json:"category" validate:"required"`
	SubCategory string `json:"subCategory" validate:"required"`
	Brand       string `json:"brand" validate:"required"`
	Model       string `json:"model" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gt=0,lte=2147483647"`
	Condition   string `json:"condition" validate:"required"`
	Remarks     string `json:"remarks,omitempty"`
}

// ElectricityReadingDTO lectura de medidor.
type ElectricityReadingDTO struct {
	Type          string `json:"type"`
	StartReading  Amount `json:"startReading"`
	EndReading    Amount `json:"endReading"`
	UnitsConsumed Amount `json:"unitsConsumed"`
	UnitType      string `json:"unitType"`
	CostPerUnit   Amount `json:"costPerUnit"`
	Total         Amount `json:"total"`
	Remarks       string `json:"remarks,omitempty"`
}

// DamageLossDTO artículo dañado o perdido.
type DamageLossDTO struct {
	Category    string `json:"category" validate:"required"`
	SubCategory string `json:"subCategory" validate:"required"`
	Brand       string `json:"brand" validate:"required"`
	Model       string `json:"model" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gte=0,lte=2147483647"`
	Condition   string `json:"condition"`
	Remarks     string `json:"remarks,omitempty"`
	Amount      Amount `json:"amount"`
}

// DateRangeDTO rango del evento.
type DateRangeDTO struct {
	From *Date `json:"from,omitempty"`
	To   *Date `json:"to,omitempty"`
}

// CreateLogEntryRequest body para POST /api/logbook. status y grandTotal no se aceptan.
type CreateLogEntryRequest struct {
	BookingID           string                  `json:"bookingId" validate:"required"`
	CustomerName        string                  `json:"customerName" validate:"required"`
	MobileNo            string                  `json:"mobileNo" validate:"required"`
	PropertyType        string                  `json:"propertyType" validate:"required"`
	EventType           string                  `json:"eventType,omitempty" validate:"required_if=PropertyType hall"`
	DateRange           DateRangeDTO            `json:"dateRange"`
	CheckInTime         string                  `json:"checkInTime,omitempty"`
	Notes               string                  `json:"notes,omitempty"`
	ItemsIssued         []IssuedItemDTO         `json:"itemsIssued" validate:"required,min=1,dive"`
	ElectricityReadings []ElectricityReadingDTO `json:"electricityReadings,omitempty" validate:"dive"`
	TotalAmount         *Amount                 `json:"totalAmount" validate:"required"`
	TotalRecoveryAmount Amount                  `json:"totalRecoveryAmount"`
	DamageLossSummary   []DamageLossDTO         `json:"damageLossSummary,omitempty" validate:"dive"`
}

// LogEntryFields campos modificables; nil significa "no enviado".
type LogEntryFields struct {
	BookingID           *string                  `json:"bookingId,omitempty" validate:"omitempty,min=1"`
	CustomerName        *string                  `json:"customerName,omitempty" validate:"omitempty,min=1"`
	MobileNo            *string                  `json:"mobileNo,omitempty"`
	PropertyType        *string                  `json:"propertyType,omitempty" validate:"omitempty,min=1"`
	EventType           *string                  `json:"eventType,omitempty"`
	DateRange           *DateRangeDTO            `json:"dateRange,omitempty"`
	CheckInTime         *string                  `json:"checkInTime,omitempty"`
	Notes               *string                  `json:"notes,omitempty"`
	ItemsIssued         *[]IssuedItemDTO         `json:"itemsIssued,omitempty" validate:"omitempty,dive"`
	ElectricityReadings *[]ElectricityReadingDTO `json:"electricityReadings,omitempty" validate:"omitempty,dive"`
	TotalAmount         *Amount                  `json:"totalAmount,omitempty"`
	TotalRecoveryAmount *Amount                  `json:"totalRecoveryAmount,omitempty"`
	DamageLossSummary   *[]DamageLossDTO         `json:"damageLossSummary,omitempty" validate:"omitempty,dive"`
}

// PatchLogEntryRequest body para PATCH /api/logbook.
type PatchLogEntryRequest struct {
	ID string `json:"_id" validate:"required"`
	LogEntryFields
}

// VerifyLogEntryRequest body para PUT /api/logbook/:id (cierre del ciclo).
type VerifyLogEntryRequest struct {
	LogEntryFields
}

// LogEntryResponse representación pública de un registro.
type LogEntryResponse struct {
	ID                  string                  `json:"_id"`
	BookingID           string                  `json:"bookingId"`
	CustomerName        string                  `json:"customerName"`
	MobileNo            string                  `json:"mobileNo"`
	PropertyType        string                  `json:"propertyType"`
	EventType           string                  `json:"eventType,omitempty"`
	DateRange           DateRangeDTO            `json:"dateRange"`
	CheckInTime         string                  `json:"checkInTime,omitempty"`
	Notes               string                  `json:"notes,omitempty"`
	ItemsIssued         []IssuedItemDTO         `json:"itemsIssued"`
	ElectricityReadings []ElectricityReadingDTO `json:"electricityReadings"`
	TotalAmount         Amount                  `json:"totalAmount"`
	TotalRecoveryAmount Amount                  `json:"totalRecoveryAmount"`
	GrandTotal          Amount                  `json:"grandTotal"`
	DamageLossSummary   []DamageLossDTO         `json:"damageLossSummary"`
	Status              string                  `json:"status"`
	VerifiedAt          *time.Time              `json:"verifiedAt,omitempty"`
	VerifiedBy          string                  `json:"verifiedBy,omitempty"`
	CreatedAt           time.Time               `json:"createdAt"`
	UpdatedAt           time.Time               `json:"updatedAt"`
}

// LogEntryEnvelope respuesta de un solo registro.
type LogEntryEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    *LogEntryResponse `json:"data"`
}

// LogEntryListResponse respuesta de GET /api/logbook.
type LogEntryListResponse struct {
	Success    bool               `json:"success"`
	Data       []LogEntryResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

package logbook

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/logbook-api/internal/application/dto"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
	domainlogbook "github.com/jhoicas/logbook-api/internal/domain/logbook"
)

// Los montos de columna se redondean aquí para que la respuesta coincida con lo guardado.
func fromCreateRequest(in dto.CreateLogEntryRequest) *entity.LogEntry {
	e := &entity.LogEntry{
		BookingID:           in.BookingID,
		CustomerName:        in.CustomerName,
		MobileNo:            in.MobileNo,
		PropertyType:        in.PropertyType,
		EventType:           in.EventType,
		DateRange:           toDateRange(in.DateRange),
		CheckInTime:         in.CheckInTime,
		Notes:               in.Notes,
		ItemsIssued:         toIssuedItems(in.ItemsIssued),
		ElectricityReadings: toReadings(in.ElectricityReadings),
		TotalRecoveryAmount: domainlogbook.Money(in.TotalRecoveryAmount.Decimal),
		DamageLossSummary:   toDamages(in.DamageLossSummary),
		GrandTotal:          decimal.Zero,
		Status:              entity.LogStatusIssued,
	}
	if in.TotalAmount != nil {
		e.TotalAmount = domainlogbook.Money(in.TotalAmount.Decimal)
	}
	return e
}

// applyFields mezcla los campos enviados sobre el registro existente.
func applyFields(e *entity.LogEntry, f dto.LogEntryFields) {
	if f.BookingID != nil {
		e.BookingID = *f.BookingID
	}
	if f.CustomerName != nil {
		e.CustomerName = *f.CustomerName
	}
	if f.MobileNo != nil {
		e.MobileNo = *f.MobileNo
	}
	if f.PropertyType != nil {
		e.PropertyType = *f.PropertyType
	}
	if f.EventType != nil {
		e.EventType = *f.EventType
	}
	if f.DateRange != nil {
		e.DateRange = toDateRange(*f.DateRange)
	}
	if f.CheckInTime != nil {
		e.CheckInTime = *f.CheckInTime
	}
	if f.Notes != nil {
		e.Notes = *f.Notes
	}
	if f.ItemsIssued != nil {
		e.ItemsIssued = toIssuedItems(*f.ItemsIssued)
	}
	if f.ElectricityReadings != nil {
		e.ElectricityReadings = toReadings(*f.ElectricityReadings)
	}
	if f.TotalAmount != nil {
		e.TotalAmount = domainlogbook.Money(f.TotalAmount.Decimal)
	}
	if f.TotalRecoveryAmount != nil {
		e.TotalRecoveryAmount = domainlogbook.Money(f.TotalRecoveryAmount.Decimal)
	}
	if f.DamageLossSummary != nil {
		e.DamageLossSummary = toDamages(*f.DamageLossSummary)
	}
}

func toDateRange(in dto.DateRangeDTO) entity.DateRange {
	return entity.DateRange{From: in.From.Ptr(), To: in.To.Ptr()}
}

func toIssuedItems(in []dto.IssuedItemDTO) []entity.IssuedItem {
	out := make([]entity.IssuedItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.IssuedItem{
			Category:    it.Category,
			SubCategory: it.SubCategory,
			Brand:       it.Brand,
			Model:       it.Model,
			Quantity:    it.Quantity,
			Condition:   it.Condition,
			Remarks:     it.Remarks,
		})
	}
	return out
}

func toReadings(in []dto.ElectricityReadingDTO) []entity.ElectricityReading {
	out := make([]entity.ElectricityReading, 0, len(in))
	for _, r := range in {
		out = append(out, entity.ElectricityReading{
			Type:          r.Type,
			StartReading:  r.StartReading.Decimal,
			EndReading:    r.EndReading.Decimal,
			UnitsConsumed: r.UnitsConsumed.Decimal,
			UnitType:      r.UnitType,
			CostPerUnit:   r.CostPerUnit.Decimal,
			Total:         r.Total.Decimal,
			Remarks:       r.Remarks,
		})
	}
	return out
}

func toDamages(in []dto.DamageLossDTO) []entity.DamageLoss {
	out := make([]entity.DamageLoss, 0, len(in))
	for _, d := range in {
		out = append(out, entity.DamageLoss{
			Category:    d.Category,
			SubCategory: d.SubCategory,
			Brand:       d.Brand,
			Model:       d.Model,
			Quantity:    d.Quantity,
			Condition:   d.Condition,
			Remarks:     d.Remarks,
			Amount:      d.Amount.Decimal,
		})
	}
	return out
}

// ToResponse convierte la entidad en su representación pública.
func ToResponse(e *entity.LogEntry) *dto.LogEntryResponse {
	if e == nil {
		return nil
	}
	out := &dto.LogEntryResponse{
		ID:                  e.ID,
		BookingID:           e.BookingID,
		CustomerName:        e.CustomerName,
		MobileNo:            e.MobileNo,
		PropertyType:        e.PropertyType,
		EventType:           e.EventType,
		DateRange:           dto.DateRangeDTO{From: dto.DateFrom(e.DateRange.From), To: dto.DateFrom(e.DateRange.To)},
		CheckInTime:         e.CheckInTime,
		Notes:               e.Notes,
		ItemsIssued:         make([]dto.IssuedItemDTO, 0, len(e.ItemsIssued)),
		ElectricityReadings: make([]dto.ElectricityReadingDTO, 0, len(e.ElectricityReadings)),
		TotalAmount:         dto.NewAmount(e.TotalAmount),
		TotalRecoveryAmount: dto.NewAmount(e.TotalRecoveryAmount),
		GrandTotal:          dto.NewAmount(e.GrandTotal),
		DamageLossSummary:   make([]dto.DamageLossDTO, 0, len(e.DamageLossSummary)),
		Status:              string(e.Status),
		VerifiedAt:          e.VerifiedAt,
		VerifiedBy:          e.VerifiedBy,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
	for _, it := range e.ItemsIssued {
		out.ItemsIssued = append(out.ItemsIssued, dto.IssuedItemDTO{
			Category: it.Category, SubCategory: it.SubCategory, Brand: it.Brand, Model: it.Model,
			Quantity: it.Quantity, Condition: it.Condition, Remarks: it.Remarks,
		})
	}
	for _, r := range e.ElectricityReadings {
		out.ElectricityReadings = append(out.ElectricityReadings, dto.ElectricityReadingDTO{
			Type:          r.Type,
			StartReading:  dto.NewAmount(r.StartReading),
			EndReading:    dto.NewAmount(r.EndReading),
			UnitsConsumed: dto.NewAmount(r.UnitsConsumed),
			UnitType:      r.UnitType,
			CostPerUnit:   dto.NewAmount(r.CostPerUnit),
			Total:         dto.NewAmount(r.Total),
			Remarks:       r.Remarks,
		})
	}
	for _, d := range e.DamageLossSummary {
		out.DamageLossSummary = append(out.DamageLossSummary, dto.DamageLossDTO{
			Category: d.Category, SubCategory: d.SubCategory, Brand: d.Brand, Model: d.Model,
			Quantity: d.Quantity, Condition: d.Condition, Remarks: d.Remarks, Amount: dto.NewAmount(d.Amount),
		})
	}
	return out
}

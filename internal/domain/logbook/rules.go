package logbook

import (
	"strconv"
	"strings"

	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
)

// Validate verifica las reglas de un registro antes de persistirlo (creación o patch).
// Devuelve *domain.ValidationError o nil.
func Validate(e *entity.LogEntry) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(e.BookingID) == "" {
		verr.Add("bookingId", "required")
	}
	if strings.TrimSpace(e.CustomerName) == "" {
		verr.Add("customerName", "required")
	}
	if strings.TrimSpace(e.PropertyType) == "" {
		verr.Add("propertyType", "required")
	}
	if strings.EqualFold(e.PropertyType, entity.PropertyTypeHall) && strings.TrimSpace(e.EventType) == "" {
		verr.Add("eventType", "required for hall")
	}
	if len(e.ItemsIssued) == 0 {
		verr.Add("itemsIssued", "min=1")
	}
	for i, it := range e.ItemsIssued {
		prefix := "itemsIssued[" + strconv.Itoa(i) + "]."
		if it.Category == "" {
			verr.Add(prefix+"category", "required")
		}
		if it.SubCategory == "" {
			verr.Add(prefix+"subCategory", "required")
		}
		if it.Brand == "" {
			verr.Add(prefix+"brand", "required")
		}
		if it.Model == "" {
			verr.Add(prefix+"model", "required")
		}
		if it.Quantity <= 0 {
			verr.Add(prefix+"quantity", "gt=0")
		}
		if it.Condition == "" {
			verr.Add(prefix+"condition", "required")
		}
	}
	if e.TotalAmount.Abs().GreaterThanOrEqual(MaxMoney) {
		verr.Add("totalAmount", "fuera de rango")
	}
	if e.TotalRecoveryAmount.Abs().GreaterThanOrEqual(MaxMoney) {
		verr.Add("totalRecoveryAmount", "fuera de rango")
	}
	if e.DateRange.From != nil && e.DateRange.To != nil && e.DateRange.To.Before(*e.DateRange.From) {
		verr.Add("dateRange.to", "before from")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

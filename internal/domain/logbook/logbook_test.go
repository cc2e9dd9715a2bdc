package logbook_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
	"github.com/jhoicas/logbook-api/internal/domain/logbook"
)

func validEntry() *entity.LogEntry {
	return &entity.LogEntry{
		BookingID:    "BK-1001",
		CustomerName: "Asha Verma",
		PropertyType: "room",
		ItemsIssued: []entity.IssuedItem{
			{Category: "furniture", SubCategory: "chair", Brand: "Nilkamal", Model: "N-1", Quantity: 10, Condition: "good"},
		},
		TotalAmount: decimal.NewFromInt(1000),
	}
}

func TestGrandTotal_SumaLecturasYRecuperacion(t *testing.T) {
	readings := []entity.ElectricityReading{
		{Type: "main", Total: decimal.RequireFromString("120.255")},
		{Type: "dg", Total: decimal.RequireFromString("79.5")},
	}
	got := logbook.GrandTotal(decimal.NewFromInt(1000), readings, decimal.RequireFromString("50.10"))
	assert.True(t, decimal.RequireFromString("1249.86").Equal(got), "got %s", got)
}

func TestGrandTotal_ValoresAusentesCuentanComoCero(t *testing.T) {
	got := logbook.GrandTotal(decimal.Zero, []entity.ElectricityReading{{Type: "main"}}, decimal.Zero)
	assert.True(t, got.IsZero())
}

func TestDamageTotal(t *testing.T) {
	got := logbook.DamageTotal([]entity.DamageLoss{
		{Amount: decimal.NewFromInt(200)},
		{Amount: decimal.RequireFromString("15.5")},
	})
	assert.Equal(t, "215.5", got.String())
}

func TestValidate_RegistroValido(t *testing.T) {
	assert.NoError(t, logbook.Validate(validEntry()))
}

func TestValidate_SinArticulosFalla(t *testing.T) {
	e := validEntry()
	e.ItemsIssued = nil
	err := logbook.Validate(e)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "itemsIssued")
}

func TestValidate_SalonRequiereTipoDeEvento(t *testing.T) {
	e := validEntry()
	e.PropertyType = "hall"
	err := logbook.Validate(e)
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "eventType")

	e.EventType = "wedding"
	assert.NoError(t, logbook.Validate(e))
}

func TestValidate_OtroTipoNoRequiereEvento(t *testing.T) {
	e := validEntry()
	e.PropertyType = "cottage"
	assert.NoError(t, logbook.Validate(e))
}

func TestValidate_CamposRequeridos(t *testing.T) {
	err := logbook.Validate(&entity.LogEntry{ItemsIssued: []entity.IssuedItem{{}}})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	for _, f := range []string{
		"bookingId", "customerName", "propertyType",
		"itemsIssued[0].category", "itemsIssued[0].quantity", "itemsIssued[0].condition",
	} {
		assert.Contains(t, verr.Fields, f)
	}
}

func TestValidate_RangoDeFechasInvertido(t *testing.T) {
	e := validEntry()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)
	e.DateRange = entity.DateRange{From: &from, To: &to}
	var verr *domain.ValidationError
	require.True(t, errors.As(logbook.Validate(e), &verr))
	assert.Contains(t, verr.Fields, "dateRange.to")
}

func TestCheckGrandTotal_Rango(t *testing.T) {
	assert.NoError(t, logbook.CheckGrandTotal(decimal.RequireFromString("999999999999.99")))
	err := logbook.CheckGrandTotal(decimal.New(1, 12))
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Error(t, logbook.CheckGrandTotal(decimal.New(-1, 12)))
}

func TestValidate_MontosFueraDeRango(t *testing.T) {
	e := validEntry()
	e.TotalAmount = decimal.New(2, 12)
	e.TotalRecoveryAmount = decimal.New(-1, 12)
	err := logbook.Validate(e)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "totalAmount")
	assert.Contains(t, verr.Fields, "totalRecoveryAmount")
}

func TestMoney_RedondeaADosDecimales(t *testing.T) {
	assert.Equal(t, "10.01", logbook.Money(decimal.RequireFromString("10.005")).String())
	assert.Equal(t, "-0.13", logbook.Money(decimal.RequireFromString("-0.125")).String())
}

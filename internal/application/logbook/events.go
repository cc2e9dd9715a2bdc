package logbook

// LogEntryVerifiedEvent se publica cuando un registro pasa a Verified.
type LogEntryVerifiedEvent struct {
	LogEntryID   string `json:"log_entry_id"`
	BookingID    string `json:"booking_id"`
	CustomerName string `json:"customer_name"`
	PropertyType string `json:"property_type"`
	GrandTotal   string `json:"grand_total"`
	DamageTotal  string `json:"damage_total"`
	DamageCount  int    `json:"damage_count"`
	VerifiedBy   string `json:"verified_by,omitempty"`
	VerifiedAt   string `json:"verified_at"`
}

// InventoryLowStockEvent se publica por cada artículo que quedó en stock bajo o agotado.
type InventoryLowStockEvent struct {
	ItemID           string `json:"item_id"`
	Category         string `json:"category"`
	SubCategory      string `json:"sub_category"`
	Brand            string `json:"brand"`
	Model            string `json:"model"`
	QuantityInStock  int    `json:"quantity_in_stock"`
	LowQuantityAlert int    `json:"low_quantity_alert"`
	Status           string `json:"status"`
	LogEntryID       string `json:"log_entry_id"`
	OccurredAt       string `json:"occurred_at"`
}

package amqp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logbook-api/internal/application/logbook"
	"github.com/jhoicas/logbook-api/pkg/config"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

func TestNewPublisher_SinURLQuedaDeshabilitado(t *testing.T) {
	p, err := NewPublisher(config.AMQPConfig{VerifiedQueue: "logbook.verified", LowStockQueue: "inventory.low_stock"}, logger.Nop())
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	err = p.PublishLogEntryVerified(context.Background(), logbook.LogEntryVerifiedEvent{LogEntryID: "x"})
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close())
}

func TestNewPublishing_JSONPersistente(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	msg, err := newPublishing(logbook.InventoryLowStockEvent{ItemID: "it-1", QuantityInStock: 0, Status: "outOfStock"}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, time.UTC, msg.Timestamp.Location())

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "it-1", body["item_id"])
	assert.Equal(t, "outOfStock", body["status"])
}

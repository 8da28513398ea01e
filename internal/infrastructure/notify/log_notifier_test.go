package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/infrastructure/notify"
)

func TestNotifyLowStock(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(zerolog.New(&buf))

	assert.False(t, n.NotifyLowStock(context.Background(), &entity.Product{ID: 1, Quantity: 6, MinQuantity: 5}))
	assert.Zero(t, buf.Len())

	assert.True(t, n.NotifyLowStock(context.Background(), &entity.Product{ID: 2, Name: "Cola", Quantity: 5, MinQuantity: 5}))

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "Cola", event["product"])
	assert.EqualValues(t, 2, event["product_id"])

	assert.False(t, n.NotifyLowStock(context.Background(), nil))
}

package hookbase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hookbase "github.com/hookbase/hookbase-go"
)

func TestEnums_Decode(t *testing.T) {
	t.Parallel()

	var got struct {
		Order    hookbase.SortOrder      `json:"order"`
		Delivery hookbase.DeliveryStatus `json:"delivery"`
		Message  hookbase.MessageStatus  `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"order":"DESC","delivery":"Exhausted","message":"success"}`), &got))
	assert.Equal(t, hookbase.SortDesc, got.Order)
	assert.Equal(t, hookbase.DeliveryExhausted, got.Delivery)
	assert.Equal(t, hookbase.MessageSuccess, got.Message)

	var bad hookbase.DeliveryStatus
	assert.Error(t, json.Unmarshal([]byte(`"bounced"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`3`), &bad))
}

func TestEnums_Encode(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(map[string]any{
		"order":  hookbase.SortAsc,
		"status": hookbase.DeliveryQueued,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order":"asc","status":"queued"}`, string(data))
}

func TestDeliveryStatus_Terminal(t *testing.T) {
	t.Parallel()

	assert.True(t, hookbase.DeliveryDelivered.Terminal())
	assert.True(t, hookbase.DeliveryExhausted.Terminal())
	assert.False(t, hookbase.DeliveryFailed.Terminal())
	assert.False(t, hookbase.DeliveryPending.Terminal())
}

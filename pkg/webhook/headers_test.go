package webhook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hookbase/hookbase-go/pkg/webhook"
)

func TestHeaders_Get(t *testing.T) {
	t.Parallel()

	t.Run("exact match wins", func(t *testing.T) {
		t.Parallel()
		h := webhook.Headers{"webhook-id": "exact", "Webhook-Id": "other"}
		got, ok := h.Get("webhook-id")
		assert.True(t, ok)
		assert.Equal(t, "exact", got)
	})

	t.Run("case-insensitive fallback", func(t *testing.T) {
		t.Parallel()
		got, ok := webhook.Headers{"WEBHOOK-ID": "msg_1"}.Get("webhook-id")
		assert.True(t, ok)
		assert.Equal(t, "msg_1", got)
	})

	t.Run("ambiguous keys resolve to the first in sort order", func(t *testing.T) {
		t.Parallel()
		h := webhook.Headers{
			"webhook-ID": "c",
			"Webhook-Id": "a",
			"WEBHOOK-ID": "b",
			"wEbhook-id": "d",
		}
		for range 100 {
			got, ok := h.Get("webhook-id")
			assert.True(t, ok)
			assert.Equal(t, "b", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, ok := webhook.Headers{"webhook-timestamp": "1"}.Get("webhook-id")
		assert.False(t, ok)
	})
}

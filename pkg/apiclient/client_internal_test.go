package apiclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_buildURL(t *testing.T) {
	t.Parallel()

	c, err := New("key", "https://api.hookbase.app/v1/", time.Second, 0)
	require.NoError(t, err)

	tests := []struct {
		name  string
		path  string
		query map[string]string
		want  string
	}{
		{"plain", "/api/sources", nil, "https://api.hookbase.app/v1/api/sources"},
		{"no leading slash", "api/sources", nil, "https://api.hookbase.app/v1/api/sources"},
		{"explicit query", "/api/sources", map[string]string{"page": "2"}, "https://api.hookbase.app/v1/api/sources?page=2"},
		{"query in path", "/api/sources?page=2", nil, "https://api.hookbase.app/v1/api/sources?page=2"},
		{
			"query in path merged",
			"/api/deliveries?status=failed&page=1",
			map[string]string{"page": "3", "limit": "50"},
			"https://api.hookbase.app/v1/api/deliveries?limit=50&page=3&status=failed",
		},
		{
			"empty explicit value keeps path value",
			"/api/deliveries?cursor=abc",
			map[string]string{"cursor": ""},
			"https://api.hookbase.app/v1/api/deliveries?cursor=abc",
		},
		{"repeated path keys", "/api/events?type=a&type=b", nil, "https://api.hookbase.app/v1/api/events?type=a&type=b"},
		{"escaped path value", "/api/search?q=a+b", nil, "https://api.hookbase.app/v1/api/search?q=a%20b"},
		{"trailing question mark", "/api/sources?", nil, "https://api.hookbase.app/v1/api/sources"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := c.buildURL(tt.path, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed query in path", func(t *testing.T) {
		t.Parallel()
		_, err := c.buildURL("/api/sources?q=%zz", nil)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

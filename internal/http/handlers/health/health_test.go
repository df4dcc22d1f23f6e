package health

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/linkbot/internal/http/response"
)

type probe bool

func (p probe) Connected() bool { return bool(p) }

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		connected  bool
		wantCode   int
		wantStatus string
	}{
		{"подключен", true, http.StatusOK, response.StatusOK},
		{"не подключен", false, http.StatusServiceUnavailable, response.StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rr := httptest.NewRecorder()

			New(logger, probe(tt.connected)).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			var body struct {
				Status string         `json:"status"`
				Data   map[string]any `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.connected, body.Data["discord"])
		})
	}
}

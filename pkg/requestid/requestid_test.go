package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailcraft/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generates when missing", "", false},
		{"keeps valid id", "req_123-abc", true},
		{"replaces id with spaces", "bad id", false},
		{"replaces oversized id", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = requestid.FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(requestid.Header, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, seen, rec.Header().Get(requestid.Header))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
				return
			}
			_, err := uuid.Parse(seen)
			require.NoError(t, err)
		})
	}
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	_, ok := requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)

	attr, ok := requestid.LoggerExtractor()(requestid.WithContext(context.Background(), "r1"))
	assert.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "r1", attr.Value.String())
}

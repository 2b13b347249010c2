package llm

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"seconds", "3", 3 * time.Second},
		{"padded", " 10 ", 10 * time.Second},
		{"zero", "0", 0},
		{"negative", "-5", 0},
		{"http date", "Wed, 21 Oct 2015 07:28:00 GMT", 0},
		{"absent", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.value != "" {
				h.Set("Retry-After", tt.value)
			}
			assert.Equal(t, tt.want, parseRetryAfter(h))
		})
	}
	assert.Zero(t, parseRetryAfter(nil))
}

func TestClassifyStatus(t *testing.T) {
	cause := errors.New("boom")

	h := http.Header{}
	h.Set("Retry-After", "2")
	var rl *ErrRateLimit
	require.True(t, errors.As(classifyStatus(http.StatusTooManyRequests, h, cause), &rl))
	assert.Equal(t, 2*time.Second, rl.RetryAfter)

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		var authErr *ErrAuthentication
		assert.True(t, errors.As(classifyStatus(status, nil, cause), &authErr), "status %d", status)
	}

	for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusBadRequest} {
		var unavail *ErrProviderUnavailable
		assert.True(t, errors.As(classifyStatus(status, nil, cause), &unavail), "status %d", status)
	}

	assert.ErrorIs(t, classifyStatus(http.StatusUnauthorized, nil, cause), cause)
}

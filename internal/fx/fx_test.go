package fx

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/cache"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestToCFA(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		rate   float64
		want   string
	}{
		{"simple", 2, 600, "CFA 1200.00"},
		{"rounds to two decimals", 1.2345, 600, "CFA 740.70"},
		{"zero", 0, 600, "CFA 0.00"},
		{"nan renders as zero", math.NaN(), 600, "CFA 0.00"},
		{"inf renders as zero", math.Inf(1), 600, "CFA 0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCFA(tt.amount, tt.rate))
		})
	}
}

func TestUSDToXOFRateFetchesAndCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"rates":{"XOF":612.34}}`))
	}))
	defer srv.Close()

	s := NewService(cache.NewMemory(), srv.URL, 600, discard())

	assert.Equal(t, 612.34, s.USDToXOFRate(context.Background()))
	assert.Equal(t, 612.34, s.USDToXOFRate(context.Background()))
	assert.Equal(t, 1, calls, "second call must hit the cache")
}

func TestUSDToXOFRateFallsBackWhenSourceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewService(cache.NewMemory(), srv.URL, 600, discard())
	assert.Equal(t, float64(600), s.USDToXOFRate(context.Background()))
}

func TestUSDToXOFRateFallsBackOnGarbageRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{"XOF":0}}`))
	}))
	defer srv.Close()

	s := NewService(cache.NewMemory(), srv.URL, 600, discard())
	assert.Equal(t, float64(600), s.USDToXOFRate(context.Background()))
}

func TestUSDToXOFRatePrefersCachedValue(t *testing.T) {
	c := cache.NewMemory()
	_ = c.Set(context.Background(), RateCacheKey, map[string]any{"rate": 555.0, "timestamp": 1}, 0)

	s := NewService(c, "http://127.0.0.1:1", 600, discard())
	assert.Equal(t, 555.0, s.USDToXOFRate(context.Background()))
}

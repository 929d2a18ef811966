// Package fx converts USD amounts to West African CFA francs (XOF).
// The USD→XOF rate is fetched from an external source and cached for
// 12 hours; a hardcoded approximate rate keeps things working when the
// source is unreachable.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/cache"
)

const (
	RateCacheKey = "fx:USD_XOF"
	rateCacheTTL = 12 * time.Hour
)

type Service struct {
	client       *http.Client
	cache        cache.Cache
	rateURL      string
	fallbackRate float64
	log          *slog.Logger
}

func NewService(c cache.Cache, rateURL string, fallbackRate float64, log *slog.Logger) *Service {
	if fallbackRate <= 0 {
		fallbackRate = 600
	}
	return &Service{
		client:       &http.Client{Timeout: 10 * time.Second},
		cache:        c,
		rateURL:      rateURL,
		fallbackRate: fallbackRate,
		log:          log,
	}
}

type cachedRate struct {
	Rate      float64 `json:"rate"`
	Timestamp int64   `json:"timestamp"`
}

type rateResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// USDToXOFRate returns the cached rate when fresh, otherwise fetches
// and caches a new one. It never fails: any problem yields the
// approximate fallback rate.
func (s *Service) USDToXOFRate(ctx context.Context) float64 {
	var cr cachedRate
	if ok, err := s.cache.Get(ctx, RateCacheKey, &cr); err == nil && ok && cr.Rate > 0 {
		return cr.Rate
	}

	rate, err := s.fetch(ctx)
	if err != nil {
		s.log.Warn("usd/xof rate fetch failed, using fallback", "fallback", s.fallbackRate, "err", err)
		return s.fallbackRate
	}
	cr = cachedRate{Rate: rate, Timestamp: time.Now().UnixMilli()}
	if err := s.cache.Set(ctx, RateCacheKey, cr, rateCacheTTL); err != nil {
		s.log.Warn("usd/xof rate cache write failed", "err", err)
	}
	return rate
}

func (s *Service) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.rateURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate source returned %s", resp.Status)
	}
	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	rate := body.Rates["XOF"]
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("invalid rate %v", rate)
	}
	return rate, nil
}

// ToCFA formats amountUSD converted at rate as "CFA <2dp>". Non-numbers
// render as "CFA 0.00".
func ToCFA(amountUSD, rate float64) string {
	if math.IsNaN(amountUSD) || math.IsInf(amountUSD, 0) {
		return "CFA 0.00"
	}
	converted := math.Round(amountUSD*rate*100) / 100
	return fmt.Sprintf("CFA %.2f", converted)
}

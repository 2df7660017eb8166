package datasource

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"stock-dashboard/src/data_source/mocktable"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// Synthetic history shape for mock symbols.
const (
	syntheticDays        = 30
	priceVariationPct    = 0.02 // uniform [-2%, +2%]
	volumeVariationFloor = 0.8  // uniform [80%, 120%]
	volumeVariationSpan  = 0.4
)

// -----------------------------------------------------------------------------
// QuoteResolver
// -----------------------------------------------------------------------------

// QuoteResolver decides, per symbol, whether a request is answered from the
// static mock table or from the live provider. Mock symbols never reach the
// live path. Live calls go through the process-wide clock gate and up to
// MaxRetries attempts with linearly increasing delays; the last attempt's
// error propagates unchanged.
type QuoteResolver struct {
	Mock   *mocktable.Table
	Live   interfaces.IQuoteSource
	Gate   *helpers.ClockGate
	Logger *logger.Logger

	MaxRetries int
	BaseDelay  time.Duration
	DelayStep  time.Duration

	// Injectable for tests.
	sleep     helpers.SleepFunc
	now       func() time.Time
	randFloat func() float64
}

// -----------------------------------------------------------------------------

func NewQuoteResolver(cfg *models.MConfig, mock *mocktable.Table, live interfaces.IQuoteSource) *QuoteResolver {
	return &QuoteResolver{
		Mock:       mock,
		Live:       live,
		Gate:       helpers.NewClockGate(time.Duration(cfg.MarketData.MinRequestIntervalSeconds) * time.Second),
		Logger:     logger.NewLogger(cfg, "QuoteResolver"),
		MaxRetries: cfg.MarketData.MaxRetries,
		BaseDelay:  time.Duration(cfg.MarketData.RetryBaseDelaySeconds) * time.Second,
		DelayStep:  time.Duration(cfg.MarketData.RetryDelayStepSeconds) * time.Second,
		sleep:      time.Sleep,
		now:        time.Now,
		randFloat:  rand.Float64,
	}
}

// -----------------------------------------------------------------------------

// GetQuote returns the raw quote for an uppercase symbol.
func (r *QuoteResolver) GetQuote(symbol string) (*models.MQuote, error) {
	symbol = strings.ToUpper(symbol)

	if q, ok := r.Mock.Quote(symbol); ok {
		r.Logger.Info("Using mock data for %s to avoid provider rate limiting", symbol)
		return q, nil
	}

	var quote *models.MQuote
	err := helpers.RetryWithLinearBackoff(r.MaxRetries, r.BaseDelay, r.DelayStep, r.sleep, func() error {
		r.Gate.Wait()

		q, err := r.Live.FetchQuote(symbol)
		if err != nil {
			r.Logger.Warning("Quote attempt failed for %s: %v", symbol, err)
			return err
		}
		if q == nil || q.CurrentPrice <= 0 {
			err := fmt.Errorf("no valid data received for %s", symbol)
			r.Logger.Warning("%v", err)
			return err
		}

		quote = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	return quote, nil
}

// -----------------------------------------------------------------------------

// GetHistory returns the historical series for an uppercase symbol and a
// validated period token. Mock symbols are synthesized locally.
func (r *QuoteResolver) GetHistory(symbol, period string) (*models.MHistoricalSeries, error) {
	symbol = strings.ToUpper(symbol)

	if record, ok := r.Mock.Lookup(symbol); ok {
		r.Logger.Info("Using synthetic historical data for %s", symbol)
		return r.syntheticHistory(record, period), nil
	}

	var series *models.MHistoricalSeries
	err := helpers.RetryWithLinearBackoff(r.MaxRetries, r.BaseDelay, r.DelayStep, r.sleep, func() error {
		r.Gate.Wait()

		h, err := r.Live.FetchHistory(symbol, period)
		if err != nil {
			r.Logger.Warning("History attempt failed for %s: %v", symbol, err)
			return err
		}
		if h == nil || len(h.Dates) == 0 {
			err := fmt.Errorf("no historical data available for %s", symbol)
			r.Logger.Warning("%v", err)
			return err
		}

		series = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	return series, nil
}

// -----------------------------------------------------------------------------

// syntheticHistory produces 30 daily points ending today, oldest first.
// Prices are the mock current price perturbed by +/-2%, volumes the mock
// volume perturbed by +/-20%. Deliberately non-deterministic; there is no
// seeding contract.
func (r *QuoteResolver) syntheticHistory(record models.MMockQuoteRecord, period string) *models.MHistoricalSeries {
	series := &models.MHistoricalSeries{
		Symbol: record.Symbol,
		Period: period,
	}

	today := r.now()
	for i := 0; i < syntheticDays; i++ {
		date := today.AddDate(0, 0, -(syntheticDays - 1 - i))
		series.Dates = append(series.Dates, date.Format("2006-01-02"))

		variation := (r.randFloat()*2 - 1) * priceVariationPct
		price := record.CurrentPrice * (1 + variation)
		series.Prices = append(series.Prices, math.Round(price*100)/100)

		volumeFactor := volumeVariationFloor + r.randFloat()*volumeVariationSpan
		series.Volumes = append(series.Volumes, int64(float64(record.Volume)*volumeFactor))
	}

	return series
}

// -----------------------------------------------------------------------------

// WithClock overrides the timing and randomness sources. Test hook.
func (r *QuoteResolver) WithClock(now func() time.Time, sleep helpers.SleepFunc, randFloat func() float64) *QuoteResolver {
	r.now = now
	r.sleep = sleep
	r.randFloat = randFloat
	return r
}

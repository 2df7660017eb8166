package datasource

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"stock-dashboard/src/data_source/mocktable"
	"stock-dashboard/src/models"

	"github.com/stretchr/testify/require"
)

// stubSource counts calls and fails a configured number of times before
// returning its canned result.
type stubSource struct {
	quoteCalls   int
	historyCalls int
	failures     int
	err          error
	quote        *models.MQuote
	history      *models.MHistoricalSeries
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchQuote(symbol string) (*models.MQuote, error) {
	s.quoteCalls++
	if s.quoteCalls <= s.failures {
		return nil, s.err
	}
	return s.quote, nil
}

func (s *stubSource) FetchHistory(symbol, period string) (*models.MHistoricalSeries, error) {
	s.historyCalls++
	if s.historyCalls <= s.failures {
		return nil, s.err
	}
	return s.history, nil
}

// -----------------------------------------------------------------------------

func testConfig() *models.MConfig {
	return &models.MConfig{
		MarketData: models.MMarketDataConfig{
			MinRequestIntervalSeconds: 0,
			MaxRetries:                3,
			RetryBaseDelaySeconds:     5,
			RetryDelayStepSeconds:     3,
		},
	}
}

func newTestResolver(live *stubSource) (*QuoteResolver, *[]time.Duration) {
	var slept []time.Duration
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

	r := NewQuoteResolver(testConfig(), mocktable.Default(), live).
		WithClock(
			func() time.Time { return now },
			func(d time.Duration) { slept = append(slept, d) },
			func() float64 { return 0.5 },
		)
	return r, &slept
}

// -----------------------------------------------------------------------------

func TestGetQuote_MockSymbolNeverReachesLiveProvider(t *testing.T) {
	live := &stubSource{}
	r, _ := newTestResolver(live)

	for _, symbol := range mocktable.Default().Symbols() {
		quote, err := r.GetQuote(symbol)
		require.NoError(t, err)
		require.Equal(t, symbol, quote.Symbol)
	}

	require.Zero(t, live.quoteCalls)
}

func TestGetQuote_LowercaseInputResolvesMockEntry(t *testing.T) {
	live := &stubSource{}
	r, _ := newTestResolver(live)

	quote, err := r.GetQuote("aapl")
	require.NoError(t, err)
	require.Equal(t, "AAPL", quote.Symbol)
	require.Equal(t, 175.50, quote.CurrentPrice)
	require.Equal(t, 174.20, quote.PreviousClose)
	require.NotNil(t, quote.MarketCap)
	require.Zero(t, live.quoteCalls)
}

func TestGetQuote_RetriesThenSucceeds(t *testing.T) {
	live := &stubSource{
		failures: 2,
		err:      errors.New("throttled"),
		quote:    &models.MQuote{Symbol: "IBM", CurrentPrice: 170.10, PreviousClose: 169.00},
	}
	r, slept := newTestResolver(live)

	quote, err := r.GetQuote("IBM")

	require.NoError(t, err)
	require.Equal(t, 170.10, quote.CurrentPrice)
	require.Equal(t, 3, live.quoteCalls)
	// Two delays of increasing duration between the three attempts.
	require.Equal(t, []time.Duration{5 * time.Second, 8 * time.Second}, *slept)
}

func TestGetQuote_ExhaustionPropagatesProviderErrorUnchanged(t *testing.T) {
	sentinel := errors.New("provider down")
	live := &stubSource{failures: 99, err: sentinel}
	r, _ := newTestResolver(live)

	_, err := r.GetQuote("IBM")

	require.Same(t, sentinel, err)
	require.Equal(t, 3, live.quoteCalls)
}

func TestGetQuote_MissingPriceCountsAsFailure(t *testing.T) {
	live := &stubSource{quote: &models.MQuote{Symbol: "IBM", CurrentPrice: 0}}
	r, _ := newTestResolver(live)

	_, err := r.GetQuote("IBM")

	require.Error(t, err)
	require.Equal(t, 3, live.quoteCalls)
}

// -----------------------------------------------------------------------------

func TestGetHistory_MockSymbolIsSynthesized(t *testing.T) {
	live := &stubSource{}
	r, _ := newTestResolver(live)

	series, err := r.GetHistory("AAPL", "1mo")

	require.NoError(t, err)
	require.Zero(t, live.historyCalls)
	require.Equal(t, "AAPL", series.Symbol)
	require.Equal(t, "1mo", series.Period)
	require.Len(t, series.Dates, 30)
	require.Len(t, series.Prices, 30)
	require.Len(t, series.Volumes, 30)
}

func TestGetHistory_SyntheticShape(t *testing.T) {
	live := &stubSource{}
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

	// Real randomness on purpose: the bounds must hold for any draw.
	r := NewQuoteResolver(testConfig(), mocktable.Default(), live).
		WithClock(func() time.Time { return now }, func(time.Duration) {}, rand.Float64)

	series, err := r.GetHistory("TSLA", "1mo")
	require.NoError(t, err)

	record, _ := mocktable.Default().Lookup("TSLA")

	// Dates strictly increase by one day and end today.
	require.Equal(t, "2024-06-03", series.Dates[len(series.Dates)-1])
	for i := 1; i < len(series.Dates); i++ {
		prev, err := time.Parse("2006-01-02", series.Dates[i-1])
		require.NoError(t, err)
		cur, err := time.Parse("2006-01-02", series.Dates[i])
		require.NoError(t, err)
		require.Equal(t, 24*time.Hour, cur.Sub(prev))
	}

	for _, price := range series.Prices {
		require.GreaterOrEqual(t, price, record.CurrentPrice*0.98-0.01)
		require.LessOrEqual(t, price, record.CurrentPrice*1.02+0.01)
	}
	for _, volume := range series.Volumes {
		require.GreaterOrEqual(t, volume, int64(float64(record.Volume)*0.8)-1)
		require.LessOrEqual(t, volume, int64(float64(record.Volume)*1.2)+1)
	}
}

func TestGetHistory_LiveRetriesThenSucceeds(t *testing.T) {
	live := &stubSource{
		failures: 1,
		err:      errors.New("empty payload"),
		history: &models.MHistoricalSeries{
			Symbol: "IBM",
			Dates:  []string{"2024-06-02", "2024-06-03"},
			Prices: []float64{169.0, 170.1},
			Volumes: []int64{
				4000000, 4100000,
			},
			Period: "5d",
		},
	}
	r, slept := newTestResolver(live)

	series, err := r.GetHistory("IBM", "5d")

	require.NoError(t, err)
	require.Equal(t, 2, live.historyCalls)
	require.Len(t, series.Dates, 2)
	require.Equal(t, []time.Duration{5 * time.Second}, *slept)
}

func TestGetHistory_EmptyLiveResultCountsAsFailure(t *testing.T) {
	live := &stubSource{history: &models.MHistoricalSeries{Symbol: "IBM"}}
	r, _ := newTestResolver(live)

	_, err := r.GetHistory("IBM", "1mo")

	require.Error(t, err)
	require.Equal(t, 3, live.historyCalls)
}

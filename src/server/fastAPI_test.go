package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	datasource "stock-dashboard/src/data_source"
	"stock-dashboard/src/data_source/mocktable"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/storage"

	"github.com/stretchr/testify/require"
)

// stubSource stands in for the live provider. Endpoints under test only ever
// resolve mock-table symbols, so it must stay uncalled.
type stubSource struct {
	calls int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchQuote(symbol string) (*models.MQuote, error) {
	s.calls++
	return &models.MQuote{Symbol: symbol, CurrentPrice: 1, PreviousClose: 1}, nil
}

func (s *stubSource) FetchHistory(symbol, period string) (*models.MHistoricalSeries, error) {
	s.calls++
	return &models.MHistoricalSeries{Symbol: symbol, Period: period}, nil
}

// -----------------------------------------------------------------------------

// testTime is a Monday morning, so the summary reports an open trading day.
var testTime = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*FastAPIServer, *stubSource) {
	t.Helper()

	cfg := &models.MConfig{
		Name:     "stock-dashboard",
		Host:     "127.0.0.1",
		Port:     8000,
		LogLevel: "INFO",
		Storage: models.MStorageConfig{
			DBType: "sqlite",
			DBPath: filepath.Join(t.TempDir(), "test.db"),
		},
		MarketData: models.MMarketDataConfig{
			MinRequestIntervalSeconds: 0,
			MaxRetries:                3,
			RetryBaseDelaySeconds:     5,
			RetryDelayStepSeconds:     3,
		},
		Server: models.MServerConfig{BroadcastIntervalSeconds: 15},
	}

	log := logger.NewLogger(cfg, "test")

	store, err := storage.NewSQLiteStore(cfg, log)
	require.NoError(t, err)
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { store.Close() })

	live := &stubSource{}
	resolver := datasource.NewQuoteResolver(cfg, mocktable.Default(), live).
		WithClock(
			func() time.Time { return testTime },
			func(time.Duration) {},
			func() float64 { return 0.5 },
		)

	srv := NewFastAPIServer(cfg, log, store, resolver, mocktable.Default())
	srv.now = func() time.Time { return testTime }

	return srv, live
}

func doGET(t *testing.T, srv *FastAPIServer, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

// -----------------------------------------------------------------------------

func TestGetRoot(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doGET(t, srv, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	require.Equal(t, "Welcome to Stock Market Dashboard API", body["message"])
	require.Equal(t, "1.0.0", body["version"])
}

func TestGetHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doGET(t, srv, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decode(t, w, &body)
	require.Equal(t, "healthy", body["status"])
	require.NotEmpty(t, body["timestamp"])
}

// -----------------------------------------------------------------------------

func TestGetCompanies_SeedsOnFirstRead(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doGET(t, srv, "/api/companies")
	require.Equal(t, http.StatusOK, w.Code)

	var companies []models.MCompany
	decode(t, w, &companies)
	require.Len(t, companies, 15)
	require.Equal(t, "AAPL", companies[0].Symbol)
	require.Equal(t, "DIS", companies[14].Symbol)

	// A second read hits the already-seeded table, same result.
	w = doGET(t, srv, "/api/companies")
	decode(t, w, &companies)
	require.Len(t, companies, 15)
}

// -----------------------------------------------------------------------------

func TestGetStock_MockQuoteAndPersistence(t *testing.T) {
	srv, live := newTestServer(t)
	doGET(t, srv, "/api/companies") // seed

	w := doGET(t, srv, "/api/stocks/aapl")
	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, live.calls)

	var data models.MStockData
	decode(t, w, &data)
	require.Equal(t, "AAPL", data.Symbol)
	require.Equal(t, 175.50, data.CurrentPrice)
	require.Equal(t, 1.3, data.Change)
	require.Equal(t, 0.75, data.ChangePercent)
	require.NotNil(t, data.MarketCap)
	require.Equal(t, 2750000000000.0, *data.MarketCap)
	require.NotNil(t, data.PERatio)
	require.Equal(t, 28.5, *data.PERatio)
	require.True(t, data.LastUpdated.Equal(testTime))

	// The company row now carries the refreshed price.
	company, err := srv.Store.GetCompany("AAPL")
	require.NoError(t, err)
	require.NotNil(t, company.CurrentPrice)
	require.Equal(t, 175.50, *company.CurrentPrice)
	require.NotNil(t, company.LastUpdated)
}

func TestGetStock_UnknownSymbolIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	doGET(t, srv, "/api/companies")

	w := doGET(t, srv, "/api/stocks/ZZZZ")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	decode(t, w, &body)
	require.Equal(t, "Company not found", body["detail"])
}

// -----------------------------------------------------------------------------

func TestGetStockHistory_DefaultPeriod(t *testing.T) {
	srv, live := newTestServer(t)
	doGET(t, srv, "/api/companies")

	w := doGET(t, srv, "/api/stocks/AAPL/history")
	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, live.calls)

	var series models.MHistoricalSeries
	decode(t, w, &series)
	require.Equal(t, "AAPL", series.Symbol)
	require.Equal(t, "1mo", series.Period)
	require.Len(t, series.Dates, 30)
	require.Len(t, series.Prices, 30)
	require.Len(t, series.Volumes, 30)
	require.Equal(t, "2024-06-03", series.Dates[29])
}

func TestGetStockHistory_InvalidPeriodIs400(t *testing.T) {
	srv, _ := newTestServer(t)
	doGET(t, srv, "/api/companies")

	w := doGET(t, srv, "/api/stocks/AAPL/history?period=7mo")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	decode(t, w, &body)
	require.Equal(t, "Invalid period", body["detail"])
}

func TestGetStockHistory_UnknownSymbolIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	doGET(t, srv, "/api/companies")

	w := doGET(t, srv, "/api/stocks/ZZZZ/history?period=1mo")
	require.Equal(t, http.StatusNotFound, w.Code)
}

// -----------------------------------------------------------------------------

func TestGetMarketSummary(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doGET(t, srv, "/api/market-summary")
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.MMarketSummary
	decode(t, w, &summary)
	require.Equal(t, 15, summary.TotalStocks)
	require.Equal(t, "open", summary.MarketStatus)
	require.True(t, summary.TradingDay)
	require.Len(t, summary.TopGainers, 5)
	require.Len(t, summary.TopLosers, 5)
	require.Equal(t, "DIS", summary.TopGainers[0].Symbol)
	require.Equal(t, "JPM", summary.TopLosers[0].Symbol)
}

// -----------------------------------------------------------------------------

func TestCompareStocks(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doGET(t, srv, "/api/compare/aapl,BOGUS,msft")
	require.Equal(t, http.StatusOK, w.Code)

	var comparison models.MComparison
	decode(t, w, &comparison)
	require.Equal(t, "2024-06-03", comparison.ComparisonDate)
	require.Len(t, comparison.Stocks, 2)
	require.Equal(t, "AAPL", comparison.Stocks[0].Symbol)
	require.Equal(t, "MSFT", comparison.Stocks[1].Symbol)
}

func TestCompareStocks_NoKnownSymbolsYieldsEmptyList(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doGET(t, srv, "/api/compare/FOO,BAR")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	decode(t, w, &body)
	// Empty list, not null.
	require.JSONEq(t, "[]", string(body["stocks"]))
}

// -----------------------------------------------------------------------------

func TestGetSectors(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doGET(t, srv, "/api/sectors")
	require.Equal(t, http.StatusOK, w.Code)

	var report models.MSectorReport
	decode(t, w, &report)
	require.Equal(t, 6, report.TotalSectors)
	require.Len(t, report.Sectors, 6)
	require.Len(t, report.Sectors["Technology"].Stocks, 5)
	require.Len(t, report.Sectors["Consumer Staples"].Stocks, 1)
}

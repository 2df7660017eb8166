package yahoo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------

// YahooFinanceSource answers quote and history requests for symbols outside
// the mock table via the public chart endpoint. Every call is a single
// attempt; throttling and retries are layered on by the resolver.
type YahooFinanceSource struct {
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(netMgr interfaces.INetworkManager) *YahooFinanceSource {
	return &YahooFinanceSource{
		Network: netMgr,
		Logger:  logger.NewLogger(nil, "YahooFinanceSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	return "yahoo"
}

// -----------------------------------------------------------------------------

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`  // Pointers to handle null
					Volume []*float64 `json:"volume"` // Pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

// FetchQuote retrieves the current quote for a symbol.
func (s *YahooFinanceSource) FetchQuote(symbol string) (*models.MQuote, error) {
	resp, err := s.fetchChart(symbol, "1d", "5m")
	if err != nil {
		return nil, err
	}

	result := resp.Chart.Result[0]
	meta := result.Meta

	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("no valid price for %s", symbol)
	}

	// Volume: last non-null point of the day.
	var volume int64
	if len(result.Indicators.Quote) > 0 {
		quote := result.Indicators.Quote[0]
		for i := len(quote.Volume) - 1; i >= 0; i-- {
			if quote.Volume[i] != nil && *quote.Volume[i] > 0 {
				volume = int64(*quote.Volume[i])
				break
			}
		}
	}

	previousClose := meta.ChartPreviousClose
	if previousClose <= 0 {
		previousClose = meta.RegularMarketPrice
	}

	// The chart endpoint carries no fundamentals; those fields stay absent
	// for live symbols.
	return &models.MQuote{
		Symbol:        symbol,
		CurrentPrice:  meta.RegularMarketPrice,
		PreviousClose: previousClose,
		Volume:        volume,
	}, nil
}

// -----------------------------------------------------------------------------

// FetchHistory retrieves daily closes and volumes for the requested period.
func (s *YahooFinanceSource) FetchHistory(symbol, period string) (*models.MHistoricalSeries, error) {
	resp, err := s.fetchChart(symbol, period, "1d")
	if err != nil {
		return nil, err
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no timestamps in response for %s", symbol)
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data in response for %s", symbol)
	}

	quote := result.Indicators.Quote[0]
	if len(result.Timestamp) != len(quote.Close) || len(result.Timestamp) != len(quote.Volume) {
		return nil, fmt.Errorf("data alignment error for %s", symbol)
	}

	type dataPoint struct {
		timestamp int64
		close     float64
		volume    int64
	}

	var points []dataPoint
	for i := 0; i < len(result.Timestamp); i++ {
		if quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}
		closeVal := *quote.Close[i]
		if closeVal <= 0 {
			s.Logger.Info("Skipping invalid point for %s: close=%f", symbol, closeVal)
			continue
		}
		points = append(points, dataPoint{
			timestamp: result.Timestamp[i],
			close:     closeVal,
			volume:    int64(*quote.Volume[i]),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].timestamp < points[j].timestamp
	})

	if len(points) == 0 {
		return nil, fmt.Errorf("no valid data points for %s", symbol)
	}

	series := &models.MHistoricalSeries{
		Symbol: symbol,
		Period: period,
	}
	for _, p := range points {
		series.Dates = append(series.Dates, time.Unix(p.timestamp, 0).UTC().Format("2006-01-02"))
		series.Prices = append(series.Prices, math.Round(p.close*100)/100)
		series.Volumes = append(series.Volumes, p.volume)
	}

	s.Logger.Info("Fetched %s: %d daily points [%s -> %s]",
		symbol, len(series.Dates), series.Dates[0], series.Dates[len(series.Dates)-1])

	return series, nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) fetchChart(symbol, rangeStr, interval string) (*chartResponse, error) {
	params := map[string]string{
		"interval":       interval,
		"range":          rangeStr,
		"includePrePost": "false",
	}

	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s", symbol)

	respBytes, err := s.Network.Get(url, params)
	if err != nil {
		return nil, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	var resp chartResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no result in response for %s", symbol)
	}

	return &resp, nil
}

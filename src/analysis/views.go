package analysis

import (
	"sort"
	"strings"
	"time"

	"stock-dashboard/src/data_source/mocktable"
	"stock-dashboard/src/models"
)

// Aggregate views are pure functions over the static mock table; they never
// touch the live provider or the store.

const topListSize = 5

// -----------------------------------------------------------------------------
// Market summary
// -----------------------------------------------------------------------------

// MarketSummary computes gainers/losers and the market-cap total over all
// mock entries. Ties in change percent keep the table's insertion order.
func MarketSummary(table *mocktable.Table, marketStatus string, tradingDay bool) models.MMarketSummary {
	var all []models.MStockInfo
	totalMarketCap := 0.0

	for _, symbol := range table.Symbols() {
		record, _ := table.Lookup(symbol)
		change, changePercent := Change(record.CurrentPrice, record.PreviousClose)

		all = append(all, models.MStockInfo{
			Symbol:        record.Symbol,
			CurrentPrice:  record.CurrentPrice,
			Change:        Round2(change),
			ChangePercent: Round2(changePercent),
			Volume:        record.Volume,
			MarketCap:     record.MarketCap,
		})
		totalMarketCap += record.MarketCap
	}

	gainers := make([]models.MStockInfo, len(all))
	copy(gainers, all)
	sort.SliceStable(gainers, func(i, j int) bool {
		return gainers[i].ChangePercent > gainers[j].ChangePercent
	})

	losers := make([]models.MStockInfo, len(all))
	copy(losers, all)
	sort.SliceStable(losers, func(i, j int) bool {
		return losers[i].ChangePercent < losers[j].ChangePercent
	})

	return models.MMarketSummary{
		TotalMarketCap: totalMarketCap,
		TotalStocks:    len(all),
		TopGainers:     topN(gainers, topListSize),
		TopLosers:      topN(losers, topListSize),
		MarketStatus:   marketStatus,
		TradingDay:     tradingDay,
	}
}

// -----------------------------------------------------------------------------

func topN(list []models.MStockInfo, n int) []models.MStockInfo {
	if len(list) > n {
		list = list[:n]
	}
	return list
}

// -----------------------------------------------------------------------------
// Comparison
// -----------------------------------------------------------------------------

// Compare resolves a comma-separated symbol list against the mock table.
// Symbols are uppercased and trimmed; unknown ones are dropped silently and
// survivors keep the input order.
func Compare(table *mocktable.Table, csvSymbols string, now time.Time) models.MComparison {
	comparison := models.MComparison{
		Stocks:         []models.MComparisonEntry{},
		ComparisonDate: now.Format("2006-01-02"),
	}

	for _, raw := range strings.Split(csvSymbols, ",") {
		symbol := strings.ToUpper(strings.TrimSpace(raw))

		record, ok := table.Lookup(symbol)
		if !ok {
			continue
		}

		change, changePercent := Change(record.CurrentPrice, record.PreviousClose)
		comparison.Stocks = append(comparison.Stocks, models.MComparisonEntry{
			Symbol:        record.Symbol,
			CurrentPrice:  record.CurrentPrice,
			Change:        Round2(change),
			ChangePercent: Round2(changePercent),
			Volume:        record.Volume,
			MarketCap:     record.MarketCap,
			PERatio:       record.TrailingPE,
			DividendYield: record.DividendYield,
			Beta:          record.Beta,
		})
	}

	return comparison
}

// -----------------------------------------------------------------------------
// Sector rollup
// -----------------------------------------------------------------------------

// Sectors groups the seed company list by sector. Only companies present in
// the mock table contribute; the average change percent is a simple
// arithmetic mean, not cap-weighted.
func Sectors(table *mocktable.Table, companies []models.MCompany) models.MSectorReport {
	sectors := make(map[string]*models.MSectorSummary)

	for _, company := range companies {
		record, ok := table.Lookup(company.Symbol)
		if !ok {
			continue
		}

		_, changePercent := Change(record.CurrentPrice, record.PreviousClose)

		summary, exists := sectors[company.Sector]
		if !exists {
			summary = &models.MSectorSummary{}
			sectors[company.Sector] = summary
		}

		summary.Stocks = append(summary.Stocks, models.MSectorStock{
			Symbol:        record.Symbol,
			Name:          company.Name,
			CurrentPrice:  record.CurrentPrice,
			ChangePercent: Round2(changePercent),
			MarketCap:     record.MarketCap,
		})
		summary.TotalMarketCap += record.MarketCap
	}

	for _, summary := range sectors {
		sum := 0.0
		for _, stock := range summary.Stocks {
			sum += stock.ChangePercent
		}
		summary.AvgChangePercent = Round2(sum / float64(len(summary.Stocks)))
	}

	return models.MSectorReport{
		Sectors:      sectors,
		TotalSectors: len(sectors),
	}
}

package analysis

import (
	"testing"
	"time"

	"stock-dashboard/src/data_source/mocktable"
	"stock-dashboard/src/models"

	"github.com/stretchr/testify/require"
)

func TestChange_Basics(t *testing.T) {
	change, pct := Change(175.50, 174.20)
	require.InDelta(t, 1.30, change, 1e-9)
	require.InDelta(t, 0.7463, pct, 1e-4)

	change, pct = Change(100, 110)
	require.InDelta(t, -10, change, 1e-9)
	require.InDelta(t, -9.0909, pct, 1e-4)
}

func TestChange_NonPositivePreviousCloseYieldsZeroPercent(t *testing.T) {
	change, pct := Change(50, 0)
	require.InDelta(t, 50, change, 1e-9)
	require.Zero(t, pct)

	_, pct = Change(50, -1)
	require.Zero(t, pct)
}

func TestChange_FormulaHoldsForAllMockEntries(t *testing.T) {
	table := mocktable.Default()
	for _, symbol := range table.Symbols() {
		record, ok := table.Lookup(symbol)
		require.True(t, ok)

		_, pct := Change(record.CurrentPrice, record.PreviousClose)
		if record.PreviousClose > 0 {
			want := (record.CurrentPrice - record.PreviousClose) / record.PreviousClose * 100
			require.InDelta(t, want, pct, 1e-9, "symbol %s", symbol)
		} else {
			require.Zero(t, pct, "symbol %s", symbol)
		}
	}
}

func TestRound2(t *testing.T) {
	require.Equal(t, 0.75, Round2(0.7463))
	require.Equal(t, 1.3, Round2(1.2999999))
	require.Equal(t, -9.09, Round2(-9.0909))
	require.Equal(t, 0.0, Round2(0))
}

// -----------------------------------------------------------------------------

func TestTransformQuote_RoundsAndPassesOptionalsThrough(t *testing.T) {
	cap := 2750000000000.0
	pe := 28.5
	quote := &models.MQuote{
		Symbol:        "AAPL",
		CurrentPrice:  175.50,
		PreviousClose: 174.20,
		Volume:        50000000,
		MarketCap:     &cap,
		TrailingPE:    &pe,
	}

	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	data := TransformQuote(quote, now)

	require.Equal(t, "AAPL", data.Symbol)
	require.Equal(t, 1.3, data.Change)
	require.Equal(t, 0.75, data.ChangePercent)
	require.Equal(t, int64(50000000), data.Volume)
	require.Equal(t, &cap, data.MarketCap)
	require.Equal(t, &pe, data.PERatio)
	// Fields the source never provided stay null.
	require.Nil(t, data.High52Week)
	require.Nil(t, data.Low52Week)
	require.Nil(t, data.DividendYield)
	require.Equal(t, now, data.LastUpdated)
}

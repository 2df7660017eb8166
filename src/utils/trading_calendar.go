package utils

import (
	"time"

	"github.com/scmhub/calendar"
)

// MarketCloseHour: the summary reports "open" strictly on local wall-clock
// hour. This mirrors the dashboard's original behavior and is a best-effort
// heuristic, not an exchange calendar; pair it with IsTradingDay to tell
// when it is meaningless.
const MarketCloseHour = 16

// -----------------------------------------------------------------------------

// TradingCalendar wraps the NYSE calendar, the one exchange this service
// covers, with a Mon-Fri fallback when the calendar data is unavailable.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

func NewTradingCalendar() *TradingCalendar {
	cal := calendar.GetCalendar("xnys")
	if cal == nil {
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

// IsTradingDay reports whether the NYSE trades on the given date.
func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// MarketStatus derives "open" or "closed" from the local hour of day.
func MarketStatus(now time.Time) string {
	if now.Hour() < MarketCloseHour {
		return "open"
	}
	return "closed"
}

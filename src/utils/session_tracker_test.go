package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-stats/src/logger"
)

func TestGetCalendarAlwaysResolves(t *testing.T) {
	// Known suffix, unknown suffix, and no suffix all yield a calendar
	for _, sym := range []string{"AAPL", "VOD.L", "BTCUSD", "WEIRD.ZZ"} {
		cal := GetCalendar(sym)
		require.NotNil(t, cal, sym)
		assert.NotNil(t, cal.Timezone, sym)
	}
}

func TestTradingCalendarWeekend(t *testing.T) {
	cal := GetCalendar("AAPL")

	// A Saturday is never a trading day
	saturday := time.Date(2025, time.June, 7, 12, 0, 0, 0, time.UTC)
	assert.False(t, cal.IsTradingDay(saturday))
	assert.False(t, cal.IsOpenOnMinute(saturday))
}

func TestSessionTracker_Session(t *testing.T) {
	st := NewSessionTracker(logger.NewLogger(nil, "test"))

	info := st.Session("AAPL", time.Date(2025, time.June, 7, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "AAPL", info.Symbol)
	assert.False(t, info.Open)
	assert.False(t, info.TradingDay)
	assert.NotEmpty(t, info.Timezone)
}

func TestSessionTracker_CachesCalendars(t *testing.T) {
	st := NewSessionTracker(logger.NewLogger(nil, "test"))

	first := st.calendarFor("AAPL")
	second := st.calendarFor("AAPL")
	assert.Same(t, first, second)
}

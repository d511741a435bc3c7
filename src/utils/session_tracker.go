package utils

import (
	"sync"
	"time"

	"trade-stats/src/logger"
	"trade-stats/src/models"
)

// -----------------------------------------------------------------------------
// SessionTracker caches symbol-to-calendar mappings. Symbols arrive
// dynamically through the API, so calendars are resolved lazily on first
// lookup rather than from a configured list.
// -----------------------------------------------------------------------------

type SessionTracker struct {
	Logger *logger.Logger

	mu        sync.RWMutex
	calendars map[string]*TradingCalendar
}

// -----------------------------------------------------------------------------

func NewSessionTracker(l *logger.Logger) *SessionTracker {
	return &SessionTracker{
		Logger:    l,
		calendars: make(map[string]*TradingCalendar),
	}
}

// -----------------------------------------------------------------------------

// Session reports the market session state for symbol at time t.
func (st *SessionTracker) Session(symbol string, t time.Time) models.MSessionInfo {
	cal := st.calendarFor(symbol)

	tz := "UTC"
	if cal.Timezone != nil {
		tz = cal.Timezone.String()
	}

	return models.MSessionInfo{
		Symbol:     symbol,
		Open:       cal.IsOpenOnMinute(t),
		TradingDay: cal.IsTradingDay(t),
		Timezone:   tz,
	}
}

// -----------------------------------------------------------------------------

func (st *SessionTracker) calendarFor(symbol string) *TradingCalendar {
	st.mu.RLock()
	cal, ok := st.calendars[symbol]
	st.mu.RUnlock()
	if ok {
		return cal
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if cal, ok := st.calendars[symbol]; ok {
		return cal
	}

	cal = GetCalendar(symbol)
	st.calendars[symbol] = cal
	st.Logger.Debug("Resolved calendar for %q (%d cached)", symbol, len(st.calendars))
	return cal
}

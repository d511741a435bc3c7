package helpers

import (
	"errors"
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type TradeStatsError struct {
	Message string
	Cause   error
}

func (e *TradeStatsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TradeStatsError) Unwrap() error {
	return e.Cause
}

// Distinct error types for each validation failure in the engine contract.
// The transport layer maps these to response payloads by name.
type InvalidSymbolError struct {
	TradeStatsError
	Symbol string
}

type InvalidValueError struct {
	TradeStatsError
	Position int
}

type InvalidWindowSizeError struct {
	TradeStatsError
	K int
}

type UnknownSymbolError struct {
	TradeStatsError
	Symbol string
}

type EmptyWindowError struct{ TradeStatsError }

type DatabaseError struct{ TradeStatsError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewInvalidSymbol(symbol, reason string) *InvalidSymbolError {
	return &InvalidSymbolError{
		TradeStatsError: TradeStatsError{Message: fmt.Sprintf("invalid symbol %q: %s", symbol, reason)},
		Symbol:          symbol,
	}
}

// -----------------------------------------------------------------------------

func NewInvalidValue(position int, reason string) *InvalidValueError {
	return &InvalidValueError{
		TradeStatsError: TradeStatsError{Message: fmt.Sprintf("invalid value at batch position %d: %s", position, reason)},
		Position:        position,
	}
}

// -----------------------------------------------------------------------------

func NewInvalidWindowSize(k int) *InvalidWindowSizeError {
	return &InvalidWindowSizeError{
		TradeStatsError: TradeStatsError{Message: fmt.Sprintf("invalid window size %d: must be >= 1", k)},
		K:               k,
	}
}

// -----------------------------------------------------------------------------

func NewUnknownSymbol(symbol string) *UnknownSymbolError {
	return &UnknownSymbolError{
		TradeStatsError: TradeStatsError{Message: fmt.Sprintf("unknown symbol %q: no observations recorded", symbol)},
		Symbol:          symbol,
	}
}

// -----------------------------------------------------------------------------

func NewEmptyWindow() *EmptyWindowError {
	return &EmptyWindowError{TradeStatsError{Message: "no observations in window"}}
}

// -----------------------------------------------------------------------------

func NewDatabaseError(message string, cause error) *DatabaseError {
	return &DatabaseError{TradeStatsError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Error Classification
// -----------------------------------------------------------------------------

// ErrorName returns the stable name of an engine error for transport mapping.
// Unrecognized errors map to "Internal".
func ErrorName(err error) string {
	var (
		invalidSymbol *InvalidSymbolError
		invalidValue  *InvalidValueError
		invalidWindow *InvalidWindowSizeError
		unknownSymbol *UnknownSymbolError
		emptyWindow   *EmptyWindowError
		database      *DatabaseError
	)

	switch {
	case errors.As(err, &invalidSymbol):
		return "InvalidSymbol"
	case errors.As(err, &invalidValue):
		return "InvalidValue"
	case errors.As(err, &invalidWindow):
		return "InvalidWindowSize"
	case errors.As(err, &unknownSymbol):
		return "UnknownSymbol"
	case errors.As(err, &emptyWindow):
		return "EmptyWindow"
	case errors.As(err, &database):
		return "Database"
	default:
		return "Internal"
	}
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts to execute the operation up to maxRetries times with exponential backoff.
func RetryWithBackoff(operation string, maxRetries int, baseDelay time.Duration, fn func() (interface{}, error)) (interface{}, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}

		lastErr = err
		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		fmt.Printf("Warning: Attempt %d/%d failed for %s: %v. Retrying in %v\n", attempt+1, maxRetries, operation, err, delay)
		time.Sleep(delay)
	}

	return nil, lastErr
}

package models

// MSessionInfo describes the market session state for one symbol.
type MSessionInfo struct {
	Symbol     string `json:"symbol"`
	Open       bool   `json:"open"`
	TradingDay bool   `json:"trading_day"`
	Timezone   string `json:"timezone"`
}

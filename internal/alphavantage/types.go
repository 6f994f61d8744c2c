package alphavantage

import (
	"strings"
	"time"
)

// apiNotice is the JSON body AlphaVantage sends instead of data when a call
// is throttled or rejected
type apiNotice struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (n apiNotice) message() string {
	for _, s := range []string{n.ErrorMessage, n.Information, n.Note} {
		if s != "" {
			return s
		}
	}
	return "empty notice"
}

// EarningsCalendarEntry represents a row from the EARNINGS_CALENDAR CSV endpoint
type EarningsCalendarEntry struct {
	Symbol           string
	Name             string
	ReportDate       time.Time
	FiscalDateEnding *time.Time
	Estimate         *float64
	Currency         string
}

// SymbolForTicker maps a list ticker such as "AAPL.US" to the AlphaVantage
// symbol "AAPL"
func SymbolForTicker(ticker string) string {
	symbol, _, _ := strings.Cut(strings.TrimSpace(ticker), ".")
	return strings.ToUpper(symbol)
}

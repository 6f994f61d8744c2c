package alphavantage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const reportDateLayout = "2006-01-02"

// EarningsCalendar is the parsed EARNINGS_CALENDAR response. Dropped holds
// the raw report dates of rows that could not be parsed.
type EarningsCalendar struct {
	Entries []EarningsCalendarEntry
	Dropped []string
}

// GetEarningsCalendar fetches upcoming earnings for one symbol. horizon is
// "3month", "6month" or "12month".
func (c *Client) GetEarningsCalendar(ctx context.Context, symbol, horizon string) (*EarningsCalendar, error) {
	log.Debugf("GetEarningsCalendar begins for %s (from Alphavantage)", symbol)
	params := url.Values{}
	params.Set("function", "EARNINGS_CALENDAR")
	params.Set("symbol", symbol)
	params.Set("horizon", horizon)

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch earnings calendar for %s: %w", symbol, err)
	}

	log.Debug("GetEarningsCalendar ends (from AV)")
	return parseEarningsCalendarCSV(bytes.NewReader(body))
}

// parseEarningsCalendarCSV parses the CSV response from EARNINGS_CALENDAR endpoint
// Expected columns: symbol,name,reportDate,fiscalDateEnding,estimate,currency
func parseEarningsCalendarCSV(r io.Reader) (*EarningsCalendar, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[col] = i
	}

	requiredCols := []string{"symbol", "name", "reportDate", "fiscalDateEnding", "estimate", "currency"}
	for _, col := range requiredCols {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	cal := &EarningsCalendar{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		reportStr := record[colIdx["reportDate"]]
		reportDate, err := time.Parse(reportDateLayout, reportStr)
		if err != nil {
			cal.Dropped = append(cal.Dropped, reportStr)
			continue
		}

		entry := EarningsCalendarEntry{
			Symbol:     record[colIdx["symbol"]],
			Name:       record[colIdx["name"]],
			ReportDate: reportDate,
			Currency:   record[colIdx["currency"]],
		}

		if fiscalStr := record[colIdx["fiscalDateEnding"]]; fiscalStr != "" {
			if t, err := time.Parse(reportDateLayout, fiscalStr); err == nil {
				entry.FiscalDateEnding = &t
			}
		}

		// blank when no analyst estimate exists
		if estStr := record[colIdx["estimate"]]; estStr != "" {
			if v, err := strconv.ParseFloat(estStr, 64); err == nil {
				entry.Estimate = &v
			}
		}

		cal.Entries = append(cal.Entries, entry)
	}

	return cal, nil
}

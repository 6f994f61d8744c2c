package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/services"
)

// ParseListChangesCSV parses a list change import CSV into rows for the
// import service.
// Required columns: ticker, list, event, date (dd.mm.yy)
// Optional column: note
// Cells past the last header column are joined into the note. Rows with an
// empty ticker are skipped. Both produce a warning on ctx.
func ParseListChangesCSV(ctx context.Context, r io.Reader) ([]services.ListChangeRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"ticker", "list", "event", "date"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	cell := func(record []string, col string) string {
		idx, ok := colIdx[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []services.ListChangeRow
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		ticker := cell(record, "ticker")
		if ticker == "" {
			services.Warnf(ctx, models.WarnImportRowSkipped, "row %d: empty ticker, skipped", rowNum)
			continue
		}

		var parts []string
		if note := cell(record, "note"); note != "" {
			parts = append(parts, note)
		}
		if len(record) > len(header) {
			services.Warnf(ctx, models.WarnImportExtraColumns, "row %d: %d extra cells joined into note", rowNum, len(record)-len(header))
			for _, extra := range record[len(header):] {
				if extra = strings.TrimSpace(extra); extra != "" {
					parts = append(parts, extra)
				}
			}
		}

		row := services.ListChangeRow{
			Row:    rowNum,
			Ticker: ticker,
			List:   cell(record, "list"),
			Event:  cell(record, "event"),
			Date:   cell(record, "date"),
		}
		if len(parts) > 0 {
			note := strings.Join(parts, ", ")
			row.Note = &note
		}
		rows = append(rows, row)
	}

	return rows, nil
}

package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawGrid is a rectangular grid of untyped cell values as read from a
// broker file. Unset cells are empty strings.
type RawGrid [][]string

// IsEmpty reports whether the grid holds no rows.
func (g RawGrid) IsEmpty() bool { return len(g) == 0 }

// sniffDelimiters are tried in priority order; the first one yielding
// more than one column wins.
var sniffDelimiters = []rune{',', '\t', ';', '|'}

// Extract reads a spreadsheet or delimited file into a raw grid.
// A delimited file where no delimiter yields more than one column
// extracts to an empty grid and a nil error: the caller treats the file
// as unreadable, not as a pipeline failure.
func Extract(path string) (RawGrid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return extractDelimited(path)
	case ".xlsx", ".xls":
		return extractWorkbook(path)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", path)
	}
}

// extractDelimited reads a delimited text file, sniffing the delimiter.
func extractDelimited(path string) (RawGrid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	for _, delim := range sniffDelimiters {
		reader := csv.NewReader(strings.NewReader(string(raw)))
		reader.Comma = delim
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		rows, err := reader.ReadAll()
		if err != nil || len(rows) == 0 {
			continue
		}
		if len(rows[0]) > 1 {
			return pad(rows), nil
		}
	}
	return RawGrid{}, nil
}

// extractWorkbook reads the active sheet of a spreadsheet workbook.
// Rows are read raw: cached cell values only, no formula evaluation.
func extractWorkbook(path string) (RawGrid, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}
	grid := RawGrid(rows)
	if grid.tabPacked() {
		grid = grid.splitTabPacked()
	}
	return pad(grid), nil
}

// tabPacked reports whether the grid carries whole rows packed as
// tab-separated text inside the first cell. Some exports put a plain
// header in row 0, so the first three rows are inspected.
func (g RawGrid) tabPacked() bool {
	for i := 0; i < len(g) && i < 3; i++ {
		if len(g[i]) > 0 && strings.Contains(g[i][0], "\t") {
			return true
		}
	}
	return false
}

// splitTabPacked rebuilds the grid by splitting every row's first cell
// on tabs, trimming trailing empty fields. Rows with an empty first
// cell are dropped; rows without tabs become single-cell rows.
func (g RawGrid) splitTabPacked() RawGrid {
	var out RawGrid
	for _, row := range g {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		cell := row[0]
		if !strings.Contains(cell, "\t") {
			out = append(out, []string{cell})
			continue
		}
		fields := strings.Split(cell, "\t")
		for len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
			fields = fields[:len(fields)-1]
		}
		out = append(out, fields)
	}
	return out
}

// pad right-pads every row with empty strings to the widest row's length.
func pad(g RawGrid) RawGrid {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range g {
		for len(row) < width {
			row = append(row, "")
		}
		g[i] = row
	}
	return g
}

// FindDataStart scans from the top for the header row: the row whose
// first cell equals "date" (trade book) or contains "stock" (capital
// gains), case-insensitively. The second value reports whether a marker
// was found; callers must not assume row 0 is a header when it is false.
func FindDataStart(g RawGrid, category FileCategory) (int, bool) {
	for i, row := range g {
		if len(row) == 0 {
			continue
		}
		first := strings.ToLower(strings.TrimSpace(row[0]))
		switch category {
		case CategoryTradeBook:
			if first == "date" {
				return i, true
			}
		case CategoryCapitalGains:
			if strings.Contains(first, "stock") {
				return i, true
			}
		}
	}
	return 0, false
}

// ExtractMetadata collects free-form metadata from the rows above the
// header: the "Account" and "Name" labels and the "Trade Book" /
// "Capital Gain" period rows. Scanning stops at the first header marker.
func ExtractMetadata(g RawGrid) map[string]string {
	metadata := make(map[string]string)
	for _, row := range g {
		if len(row) == 0 {
			continue
		}
		first := strings.ToLower(strings.TrimSpace(row[0]))
		second := ""
		if len(row) > 1 {
			second = strings.TrimSpace(row[1])
		}
		switch {
		case first == "account":
			metadata["account"] = second
		case first == "name":
			metadata["name"] = second
		case strings.Contains(first, "trade book"):
			metadata["period"] = second
		case strings.Contains(first, "capital gain"):
			metadata["fiscal_year"] = second
		}
		if first == "date" || first == "stock symbol" {
			break
		}
	}
	return metadata
}

package export

import (
	"fmt"
	"strings"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// Format names a supported export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts a case-insensitive format name; empty means CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q", raw)
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Dataset defines tabular export content. Rows are aligned with Headers.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// FromGrid lays a grid out as one row per period with a leading period column.
func FromGrid(title string, grid models.Grid) Dataset {
	headers := make([]string, 0, len(grid.Days)+1)
	headers = append(headers, "Period")
	for _, d := range grid.Days {
		headers = append(headers, string(d))
	}

	rows := make([][]string, 0, len(grid.Periods))
	for i, p := range grid.Periods {
		label := fmt.Sprintf("%d", p)
		if l := grid.PeriodLabels[p]; l != "" {
			label = fmt.Sprintf("%d (%s)", p, l)
		}
		row := make([]string, 0, len(headers))
		row = append(row, label)
		row = append(row, grid.Cells[i]...)
		rows = append(rows, row)
	}
	return Dataset{Title: title, Headers: headers, Rows: rows}
}

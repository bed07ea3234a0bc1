// Package importer reads roster spreadsheets into raw student records.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/sma-remedial-api/internal/models"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

// Column identifies a roster field.
type Column string

const (
	ColumnStudentID Column = "student_id"
	ColumnName      Column = "name"
	ColumnSubjects  Column = "subjects"
	ColumnExemption Column = "exemption"
	ColumnNote      Column = "note"
)

// RequiredColumns must all appear in the header row.
var RequiredColumns = []Column{ColumnStudentID, ColumnName, ColumnSubjects, ColumnExemption}

var headerAliases = map[string]Column{
	"학번":         ColumnStudentID,
	"student_id": ColumnStudentID,
	"studentid":  ColumnStudentID,
	"이름":         ColumnName,
	"name":       ColumnName,
	"미도달과목":      ColumnSubjects,
	"subjects":   ColumnSubjects,
	"예외처리":       ColumnExemption,
	"exemption":  ColumnExemption,
	"특기사항":       ColumnNote,
	"note":       ColumnNote,
}

// ReadRoster parses the first sheet of an xlsx workbook. Row numbers on the
// returned records are 1-based spreadsheet rows; blank rows are skipped.
func ReadRoster(r io.Reader) ([]models.RawStudentRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "file is not a readable xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read roster sheet")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "roster sheet is empty")
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]models.RawStudentRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		records = append(records, models.RawStudentRecord{
			Row:       i + 2,
			StudentID: cell(row, columns, ColumnStudentID),
			Name:      cell(row, columns, ColumnName),
			Subjects:  cell(row, columns, ColumnSubjects),
			Exemption: cell(row, columns, ColumnExemption),
			Note:      cell(row, columns, ColumnNote),
		})
	}
	return records, nil
}

func mapHeader(header []string) (map[Column]int, error) {
	columns := make(map[Column]int, len(header))
	for i, title := range header {
		key := strings.ToLower(strings.TrimSpace(title))
		col, ok := headerAliases[key]
		if !ok {
			continue
		}
		if _, dup := columns[col]; !dup {
			columns[col] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, string(col))
		}
	}
	if len(missing) > 0 {
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("roster is missing columns: %s", strings.Join(missing, ", "))),
			map[string][]string{"missing_columns": missing},
		)
	}
	return columns, nil
}

func cell(row []string, columns map[Column]int, col Column) string {
	idx, ok := columns[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

package core

// codec.go renders import templates and parses uploaded spreadsheets.
//
// Templates carry one data sheet named after the category with a bold header
// row and the sample row beneath it. Course and subject templates also get a
// protected reference sheet listing the codes that already exist.

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize.NewFile creates.
const defaultSheet = "Sheet1"

// ReferenceEntry is one (code, name) line of a template reference sheet.
type ReferenceEntry struct {
	Code string
	Name string
}

// referenceSheet is the optional read-only sheet of a template.
type referenceSheet struct {
	title   string
	entries []ReferenceEntry
}

// ParsedUpload is the result of parsing an uploaded spreadsheet.
type ParsedUpload struct {
	Columns []string `json:"columns"`
	Rows    []RawRow `json:"data"`
}

// renderTemplate builds an xlsx template for schema. ref may be nil.
func renderTemplate(sheet string, schema ColumnSchema, ref *referenceSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("name data sheet: %w", err)
	}

	header := make([]any, len(schema.Columns))
	sample := make([]any, len(schema.Columns))
	for i, col := range schema.Columns {
		header[i] = col
		sample[i] = schema.Sample[col]
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheet, 2, sample); err != nil {
		return nil, err
	}
	if err := boldHeader(f, sheet, len(schema.Columns)); err != nil {
		return nil, err
	}

	if ref != nil {
		if err := addReferenceSheet(f, ref); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

func addReferenceSheet(f *excelize.File, ref *referenceSheet) error {
	if _, err := f.NewSheet(ref.title); err != nil {
		return fmt.Errorf("create %s sheet: %w", ref.title, err)
	}

	if err := writeRow(f, ref.title, 1, []any{colCode, colName}); err != nil {
		return err
	}
	for i, e := range ref.entries {
		if err := writeRow(f, ref.title, i+2, []any{e.Code, e.Name}); err != nil {
			return err
		}
	}
	if err := boldHeader(f, ref.title, 2); err != nil {
		return err
	}

	// Read-only guide; the import never reads this sheet back.
	err := f.ProtectSheet(ref.title, &excelize.SheetProtectionOptions{
		SelectLockedCells:   true,
		SelectUnlockedCells: true,
	})
	if err != nil {
		return fmt.Errorf("protect %s sheet: %w", ref.title, err)
	}
	return nil
}

// writeRow writes values as strings starting at column A of rowNum.
func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, fmt.Sprint(v)); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func boldHeader(f *excelize.File, sheet string, cols int) error {
	if cols == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// parseUpload reads the first sheet of an xlsx file. The first row is the
// header; every later non-blank row becomes a RawRow keyed by header text,
// in sheet order. Cells missing at the end of a row read as "".
func parseUpload(data []byte) (*ParsedUpload, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no file provided", ErrEmptyInput)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedInput)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	defer rows.Close()

	var (
		header []headerCell
		out    ParsedUpload
	)
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}

		if header == nil {
			header = parseHeader(cells)
			if len(header) == 0 {
				// Leading blank rows before the header are ignored
				continue
			}
			for _, h := range header {
				out.Columns = append(out.Columns, h.name)
			}
			continue
		}

		if row, ok := buildRow(header, cells); ok {
			out.Rows = append(out.Rows, row)
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if len(out.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", ErrEmptyInput, sheets[0])
	}
	return &out, nil
}

// headerCell is a named column and its position in the sheet.
type headerCell struct {
	name  string
	index int
}

// parseHeader keeps non-empty header cells. A repeated name keeps its first
// position.
func parseHeader(cells []string) []headerCell {
	seen := make(map[string]bool, len(cells))
	var out []headerCell
	for i, c := range cells {
		name := CleanCell(c)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, headerCell{name: name, index: i})
	}
	return out
}

// buildRow maps cells onto the header. ok is false for a blank row.
func buildRow(header []headerCell, cells []string) (RawRow, bool) {
	row := make(RawRow, len(header))
	blank := true
	for _, h := range header {
		var v string
		if h.index < len(cells) {
			v = CleanCell(cells[h.index])
		}
		if v != "" {
			blank = false
		}
		row[h.name] = v
	}
	return row, !blank
}

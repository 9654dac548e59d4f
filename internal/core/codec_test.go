package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestTemplateRoundTrip(t *testing.T) {
	for _, def := range All() {
		t.Run(string(def.Category), func(t *testing.T) {
			data, err := renderTemplate(string(def.Category), def.Schema, nil)
			if err != nil {
				t.Fatalf("renderTemplate() error = %v", err)
			}

			parsed, err := parseUpload(data)
			if err != nil {
				t.Fatalf("parseUpload() error = %v", err)
			}

			if len(parsed.Columns) != len(def.Schema.Columns) {
				t.Fatalf("Columns = %v, want %v", parsed.Columns, def.Schema.Columns)
			}
			for i, col := range def.Schema.Columns {
				if parsed.Columns[i] != col {
					t.Errorf("Columns[%d] = %q, want %q", i, parsed.Columns[i], col)
				}
			}

			if len(parsed.Rows) != 1 {
				t.Fatalf("got %d rows, want 1", len(parsed.Rows))
			}
			for col, want := range def.Schema.Sample {
				if got := parsed.Rows[0][col]; got != want {
					t.Errorf("row[%q] = %q, want %q", col, got, want)
				}
			}
		})
	}
}

func TestRenderTemplate_ReferenceSheet(t *testing.T) {
	ref := &referenceSheet{
		title: "Departments",
		entries: []ReferenceEntry{
			{Code: "CS", Name: "Computer Science"},
			{Code: "EC", Name: "Electronics"},
		},
	}
	data, err := renderTemplate("course", courseSchema, ref)
	if err != nil {
		t.Fatalf("renderTemplate() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "course" || sheets[1] != "Departments" {
		t.Fatalf("sheets = %v, want [course Departments]", sheets)
	}

	rows, err := f.GetRows("Departments")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("reference sheet has %d rows, want 3", len(rows))
	}
	if rows[2][0] != "EC" || rows[2][1] != "Electronics" {
		t.Errorf("reference row = %v, want [EC Electronics]", rows[2])
	}

	// The reference sheet never leaks into parsed rows.
	parsed, err := parseUpload(data)
	if err != nil {
		t.Fatalf("parseUpload() error = %v", err)
	}
	if len(parsed.Rows) != 1 {
		t.Errorf("parsed %d rows, want 1", len(parsed.Rows))
	}
}

func TestParseUpload_Errors(t *testing.T) {
	headerOnly := workbook(t, [][]string{{"name", "code"}})

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"no bytes", nil, ErrEmptyInput},
		{"not a spreadsheet", []byte("name,code\nCS,Computer Science\n"), ErrMalformedInput},
		{"header only", headerOnly, ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseUpload(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("parseUpload() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseUpload_RowHandling(t *testing.T) {
	data := workbook(t, [][]string{
		{" name ", "code", "", "code"},
		{"Computer Science", " CS ", "ignored", "dup"},
		{"", "", "", ""},
		{"Electronics"},
	})

	parsed, err := parseUpload(data)
	if err != nil {
		t.Fatalf("parseUpload() error = %v", err)
	}

	if len(parsed.Columns) != 2 || parsed.Columns[0] != "name" || parsed.Columns[1] != "code" {
		t.Fatalf("Columns = %v, want [name code]", parsed.Columns)
	}
	if len(parsed.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (blank row skipped)", len(parsed.Rows))
	}
	if got := parsed.Rows[0]["code"]; got != "CS" {
		t.Errorf("first duplicate header should win: code = %q, want %q", got, "CS")
	}
	if got, ok := parsed.Rows[1]["code"]; !ok || got != "" {
		t.Errorf("missing trailing cell = %q (present %v), want empty string", got, ok)
	}
	if got := parsed.Rows[1]["name"]; got != "Electronics" {
		t.Errorf("row order not preserved: name = %q", got)
	}
}

func TestParseUpload_KeepsQuotesInCells(t *testing.T) {
	data := workbook(t, [][]string{
		{"name", "email", "password"},
		{"D'Souza", "a@x.edu", "S3cret'"},
		{"Quinn", "b@x.edu", `"quoted"pass"`},
		{"Formula", "c@x.edu", `="00123"`},
	})

	parsed, err := parseUpload(data)
	if err != nil {
		t.Fatalf("parseUpload() error = %v", err)
	}
	if len(parsed.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(parsed.Rows))
	}

	tests := []struct {
		row  int
		col  string
		want string
	}{
		{0, "name", "D'Souza"},
		{0, "password", "S3cret'"},
		{1, "password", `"quoted"pass"`},
		{2, "password", "00123"},
	}
	for _, tt := range tests {
		if got := parsed.Rows[tt.row][tt.col]; got != tt.want {
			t.Errorf("row %d %s = %q, want %q", tt.row+1, tt.col, got, tt.want)
		}
	}
}

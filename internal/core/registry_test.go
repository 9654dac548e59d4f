package core

import (
	"errors"
	"testing"
)

func TestGetSchema_EveryCategory(t *testing.T) {
	for _, name := range CategoryNames() {
		t.Run(name, func(t *testing.T) {
			schema, err := GetSchema(Category(name))
			if err != nil {
				t.Fatalf("GetSchema(%q) error = %v", name, err)
			}
			if len(schema.Columns) == 0 {
				t.Fatal("schema has no columns")
			}
			if len(schema.Sample) != len(schema.Columns) {
				t.Errorf("sample has %d keys, want %d", len(schema.Sample), len(schema.Columns))
			}
			for _, col := range schema.Columns {
				if _, ok := schema.Sample[col]; !ok {
					t.Errorf("sample missing column %q", col)
				}
			}
		})
	}
}

func TestGetSchema_FixedColumns(t *testing.T) {
	tests := []struct {
		category Category
		want     []string
	}{
		{CategoryDepartment, []string{"name", "code"}},
		{CategoryCourse, []string{"name", "code", "departmentCode", "fees"}},
		{CategorySubject, []string{"name", "code", "courseCode"}},
		{CategoryAdmin, []string{"name", "email", "phone", "role", "password"}},
	}

	for _, tt := range tests {
		schema, err := GetSchema(tt.category)
		if err != nil {
			t.Fatalf("GetSchema(%q) error = %v", tt.category, err)
		}
		if len(schema.Columns) != len(tt.want) {
			t.Fatalf("GetSchema(%q).Columns = %v, want %v", tt.category, schema.Columns, tt.want)
		}
		for i := range tt.want {
			if schema.Columns[i] != tt.want[i] {
				t.Errorf("GetSchema(%q).Columns[%d] = %q, want %q", tt.category, i, schema.Columns[i], tt.want[i])
			}
		}
	}

	students, _ := GetSchema(CategoryStudents)
	if got := len(students.Columns); got != 47 {
		t.Errorf("students column count = %d, want 47", got)
	}
	faculty, _ := GetSchema(CategoryFaculty)
	if got := len(faculty.Columns); got != 16 {
		t.Errorf("faculty column count = %d, want 16", got)
	}
}

func TestGetSchema_ReturnsCopy(t *testing.T) {
	schema, _ := GetSchema(CategoryDepartment)
	schema.Columns[0] = "mutated"
	schema.Sample["name"] = "mutated"

	again, _ := GetSchema(CategoryDepartment)
	if again.Columns[0] != "name" || again.Sample["name"] == "mutated" {
		t.Error("GetSchema exposed the registry's schema to mutation")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"department", false},
		{"students", false},
		{"faculty", false},
		{"Department", true},
		{"student", true},
		{"", true},
		{"../etc", true},
	}

	for _, tt := range tests {
		_, err := ParseCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("ParseCategory(%q) error = %v, want ErrInvalidCategory", tt.in, err)
		}
	}
}

func TestDefinitions_ReferenceSheets(t *testing.T) {
	want := map[Category]Category{
		CategoryCourse:  CategoryDepartment,
		CategorySubject: CategoryCourse,
	}
	for _, def := range All() {
		if def.ReferenceSheet != want[def.Category] {
			t.Errorf("%s ReferenceSheet = %q, want %q", def.Category, def.ReferenceSheet, want[def.Category])
		}
		if def.importer == nil {
			t.Errorf("%s has no importer", def.Category)
		}
	}
}

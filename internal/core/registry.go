package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Definition describes one import category: its template columns and how
// its rows are imported.
type Definition struct {
	Category Category
	Label    string
	Schema   ColumnSchema

	// ReferenceSheet is the category whose existing codes are appended to the
	// template as a read-only sheet. Empty when the template has none.
	ReferenceSheet Category

	importer importer
}

// definitions is the closed set of categories, in catalogue order.
var definitions = []Definition{
	{
		Category: CategoryDepartment,
		Label:    "Departments",
		Schema:   departmentSchema,
		importer: departmentImporter,
	},
	{
		Category:       CategoryCourse,
		Label:          "Courses",
		Schema:         courseSchema,
		ReferenceSheet: CategoryDepartment,
		importer:       courseImporter,
	},
	{
		Category:       CategorySubject,
		Label:          "Subjects",
		Schema:         subjectSchema,
		ReferenceSheet: CategoryCourse,
		importer:       subjectImporter,
	},
	{
		Category: CategoryAdmin,
		Label:    "Admin Accounts",
		Schema:   adminSchema,
		importer: adminImporter,
	},
	{
		Category: CategoryStudents,
		Label:    "Students",
		Schema:   studentSchema,
		importer: studentImporter,
	},
	{
		Category: CategoryFaculty,
		Label:    "Faculty",
		Schema:   facultySchema,
		importer: facultyImporter,
	},
}

// ParseCategory validates a category name taken from a request. It is the
// only place a category string is checked, and performs no I/O.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := lookup(c); !ok {
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidCategory, s, strings.Join(CategoryNames(), ", "))
	}
	return c, nil
}

// Lookup returns the definition of a category.
func Lookup(c Category) (Definition, error) {
	def, ok := lookup(c)
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
	}
	return def, nil
}

// GetSchema returns a copy of the column schema of a category.
func GetSchema(c Category) (ColumnSchema, error) {
	def, err := Lookup(c)
	if err != nil {
		return ColumnSchema{}, err
	}
	return ColumnSchema{
		Columns: slices.Clone(def.Schema.Columns),
		Sample:  maps.Clone(def.Schema.Sample),
	}, nil
}

// All returns every definition in catalogue order.
func All() []Definition {
	return slices.Clone(definitions)
}

// CategoryNames returns the category names in catalogue order.
func CategoryNames() []string {
	names := make([]string, len(definitions))
	for i, def := range definitions {
		names[i] = string(def.Category)
	}
	return names
}

func lookup(c Category) (Definition, bool) {
	for _, def := range definitions {
		if def.Category == c {
			return def, true
		}
	}
	return Definition{}, false
}

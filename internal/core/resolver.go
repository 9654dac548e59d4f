package core

import (
	"context"
	"fmt"
)

// resolveLookups loads every referenced category once and indexes it by code.
// It runs before any row is transformed. A batch with no references issues
// no queries.
func resolveLookups(ctx context.Context, r ReferenceReader, refs []Category) (Lookups, error) {
	var lk Lookups

	for _, ref := range refs {
		switch ref {
		case CategoryDepartment:
			if lk.Departments != nil {
				continue
			}
			depts, err := r.ListDepartments(ctx)
			if err != nil {
				return Lookups{}, fmt.Errorf("resolve department codes: %w", err)
			}
			lk.Departments = indexDepartments(depts)

		case CategoryCourse:
			if lk.Courses != nil {
				continue
			}
			courses, err := r.ListCourses(ctx)
			if err != nil {
				return Lookups{}, fmt.Errorf("resolve course codes: %w", err)
			}
			lk.Courses = indexCourses(courses)

		default:
			return Lookups{}, fmt.Errorf("%w: %q has no code index", ErrInvalidCategory, string(ref))
		}
	}

	return lk, nil
}

func indexDepartments(depts []Department) NaturalKeyIndex {
	idx := make(NaturalKeyIndex, len(depts))
	for _, d := range depts {
		idx[d.Code] = KeyRef{ID: d.ID, Name: d.Name}
	}
	return idx
}

func indexCourses(courses []Course) NaturalKeyIndex {
	idx := make(NaturalKeyIndex, len(courses))
	for _, c := range courses {
		idx[c.Code] = KeyRef{ID: c.ID, Name: c.Name}
	}
	return idx
}

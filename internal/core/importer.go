package core

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// importer is the per-category import strategy. Every category in the
// registry carries exactly one, so dispatch never consults a string.
type importer interface {
	// references lists the categories whose codes rows of this category use.
	references() []Category

	// run transforms and persists rows, preserving their order.
	run(ctx context.Context, env *batchEnv, rows []RawRow) (batchOutcome, error)
}

// batchEnv is the request-scoped state shared by the rows of one batch.
type batchEnv struct {
	store      RecordWriter
	lookups    Lookups
	validate   *validator.Validate
	bcryptCost int
	workers    int
	log        *slog.Logger
}

// batchOutcome counts what happened to the submitted rows.
type batchOutcome struct {
	imported int // written to the store
	dropped  int // unresolved natural key
	skipped  int // duplicate natural key or failed account
}

var (
	departmentImporter importer = simpleImporter[DepartmentRecord]{
		transform: transformDepartment,
		write: func(ctx context.Context, env *batchEnv, recs []DepartmentRecord) (int, error) {
			return env.store.InsertDepartments(ctx, recs)
		},
	}

	courseImporter importer = simpleImporter[CourseRecord]{
		refs:      []Category{CategoryDepartment},
		transform: transformCourse,
		write: func(ctx context.Context, env *batchEnv, recs []CourseRecord) (int, error) {
			return env.store.InsertCourses(ctx, recs)
		},
	}

	subjectImporter importer = simpleImporter[SubjectRecord]{
		refs:      []Category{CategoryCourse},
		transform: transformSubject,
		write: func(ctx context.Context, env *batchEnv, recs []SubjectRecord) (int, error) {
			return env.store.InsertSubjects(ctx, recs)
		},
	}

	adminImporter importer = simpleImporter[AccountRecord]{
		transform: transformAdmin,
		write:     writeAccounts,
	}

	studentImporter importer = dependentImporter[StudentProfile]{
		refs:      []Category{CategoryDepartment, CategoryCourse},
		role:      RoleStudent,
		password:  DefaultStudentPassword,
		keyColumn: colEnrollmentNo,
		build:     buildStudentProfile,
		save: func(ctx context.Context, w RecordWriter, p StudentProfile) error {
			return w.CreateStudentProfile(ctx, p)
		},
	}

	facultyImporter importer = dependentImporter[FacultyProfile]{
		refs:      []Category{CategoryDepartment},
		role:      RoleFaculty,
		password:  DefaultFacultyPassword,
		keyColumn: colEmployeeID,
		build:     buildFacultyProfile,
		save: func(ctx context.Context, w RecordWriter, p FacultyProfile) error {
			return w.CreateFacultyProfile(ctx, p)
		},
	}
)

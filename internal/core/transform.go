package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// simpleImporter handles categories that map one row to one record and are
// written in a single bulk call.
type simpleImporter[R any] struct {
	refs      []Category
	transform func(row RawRow, lk Lookups) (R, error)
	write     func(ctx context.Context, env *batchEnv, recs []R) (int, error)
}

func (s simpleImporter[R]) references() []Category { return s.refs }

func (s simpleImporter[R]) run(ctx context.Context, env *batchEnv, rows []RawRow) (batchOutcome, error) {
	var out batchOutcome

	recs := make([]R, 0, len(rows))
	rowNums := make([]int, 0, len(rows))
	for i, row := range rows {
		rec, err := s.transform(row, env.lookups)
		if errors.Is(err, ErrUnresolvedReference) {
			out.dropped++
			env.log.Debug("row dropped", "row", i+1, "reason", err.Error())
			continue
		}
		if err != nil {
			return out, fmt.Errorf("row %d: %w", i+1, err)
		}
		recs = append(recs, rec)
		rowNums = append(rowNums, i+1)
	}

	// Runs even when every row was dropped; zero is a valid result.
	written, err := persistRecords(ctx, env, recs, rowNums, s.write)
	if err != nil {
		return out, err
	}

	out.imported = written
	out.skipped = len(recs) - written
	return out, nil
}

// persistRecords is the bulk persistence gateway. Every record is validated
// before anything is written, so a structural failure commits nothing.
// Duplicate natural keys are skipped by the store, not reported.
func persistRecords[R any](ctx context.Context, env *batchEnv, recs []R, rowNums []int,
	write func(context.Context, *batchEnv, []R) (int, error)) (int, error) {
	for i := range recs {
		if err := env.validate.Struct(recs[i]); err != nil {
			return 0, newStructuralError(rowNums[i], err)
		}
	}
	return write(ctx, env, recs)
}

func transformDepartment(row RawRow, _ Lookups) (DepartmentRecord, error) {
	return DepartmentRecord{
		Name: row.Get(colName),
		Code: row.Get(colCode),
	}, nil
}

func transformCourse(row RawRow, lk Lookups) (CourseRecord, error) {
	deptCode := row.Get(colDepartmentCode)
	dept, ok := lk.Departments.Resolve(deptCode)
	if !ok {
		return CourseRecord{}, fmt.Errorf("%w: department %q", ErrUnresolvedReference, deptCode)
	}

	fees, ok := ParseNumber(row.Get(colFees))
	if !ok {
		fees = 0
	}

	return CourseRecord{
		Name:         row.Get(colName),
		Code:         row.Get(colCode),
		DepartmentID: dept.ID,
		Fees:         fees,
	}, nil
}

func transformSubject(row RawRow, lk Lookups) (SubjectRecord, error) {
	courseCode := row.Get(colCourseCode)
	course, ok := lk.Courses.Resolve(courseCode)
	if !ok {
		return SubjectRecord{}, fmt.Errorf("%w: course %q", ErrUnresolvedReference, courseCode)
	}

	return SubjectRecord{
		Name:     row.Get(colName),
		Code:     row.Get(colCode),
		CourseID: course.ID,
	}, nil
}

func transformAdmin(row RawRow, _ Lookups) (AccountRecord, error) {
	role := Role(strings.ToUpper(row.Get(colRole)))
	if role == "" {
		role = RoleAdmin
	}

	return AccountRecord{
		DisplayName: row.Get(colName),
		Email:       row.Get(colEmail),
		Phone:       row.Get(colPhone),
		Role:        role,
		Password:    withDefault(row.Get(colPassword), DefaultAdminPassword),
		Active:      true,
	}, nil
}

// writeAccounts hashes every password on the worker pool, then writes the
// accounts in one bulk call.
func writeAccounts(ctx context.Context, env *batchEnv, recs []AccountRecord) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(env.workers)

	for i := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(recs[i].Password), env.bcryptCost)
			if err != nil {
				return &StructuralError{Row: i + 1, Field: colPassword, Tag: "bcrypt", Err: err}
			}
			recs[i].PasswordHash = hash
			recs[i].Password = ""
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return env.store.InsertAccounts(ctx, recs)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

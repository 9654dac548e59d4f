// Package memstore is an in-memory core.Store with the same uniqueness and
// foreign key rules as the Postgres schema. It backs tests and local runs
// without a database.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/JonMunkholm/institute/internal/core"
)

// Account is a stored account with its creation sequence number.
type Account struct {
	ID  uuid.UUID
	Seq int64
	core.AccountRecord
}

// Subject is a stored subject.
type Subject struct {
	ID uuid.UUID
	core.SubjectRecord
}

// StudentProfile is a stored student profile with its creation sequence.
type StudentProfile struct {
	Seq int64
	core.StudentProfile
}

// FacultyProfile is a stored faculty profile with its creation sequence.
type FacultyProfile struct {
	Seq int64
	core.FacultyProfile
}

// Store is safe for concurrent use.
type Store struct {
	// ProfileHook, when set, runs before a profile is stored and can fail it.
	// key is the enrollment or employee number.
	ProfileHook func(key string) error

	mu  sync.Mutex
	seq int64

	departments []core.Department
	courses     []core.Course
	subjects    []Subject
	accounts    []Account
	students    []StudentProfile
	faculty     []FacultyProfile
	runs        []core.ImportRun
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

var _ core.Store = (*Store)(nil)

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// SeedDepartment adds a department directly and returns its id.
func (s *Store) SeedDepartment(code, name string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := core.Department{ID: uuid.New(), Code: code, Name: name}
	s.departments = append(s.departments, d)
	return d.ID
}

// SeedCourse adds a course directly and returns its id.
func (s *Store) SeedCourse(code, name string, departmentID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := core.Course{ID: uuid.New(), Code: code, Name: name, DepartmentID: departmentID}
	s.courses = append(s.courses, c)
	return c.ID
}

func (s *Store) ListDepartments(ctx context.Context) ([]core.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.departments), nil
}

func (s *Store) ListCourses(ctx context.Context) ([]core.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.courses), nil
}

func (s *Store) InsertDepartments(ctx context.Context, recs []core.DepartmentRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := codeSet(s.departments, func(d core.Department) string { return d.Code })
	n := 0
	for _, r := range recs {
		if taken[r.Code] {
			continue
		}
		taken[r.Code] = true
		s.departments = append(s.departments, core.Department{ID: uuid.New(), Code: r.Code, Name: r.Name})
		n++
	}
	return n, nil
}

func (s *Store) InsertCourses(ctx context.Context, recs []core.CourseRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range recs {
		if !s.hasDepartment(r.DepartmentID) {
			return 0, fmt.Errorf("insert or update on table \"courses\" violates foreign key constraint: department %s", r.DepartmentID)
		}
	}

	taken := codeSet(s.courses, func(c core.Course) string { return c.Code })
	n := 0
	for _, r := range recs {
		if taken[r.Code] {
			continue
		}
		taken[r.Code] = true
		s.courses = append(s.courses, core.Course{ID: uuid.New(), Code: r.Code, Name: r.Name, DepartmentID: r.DepartmentID})
		n++
	}
	return n, nil
}

func (s *Store) InsertSubjects(ctx context.Context, recs []core.SubjectRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range recs {
		if !s.hasCourse(r.CourseID) {
			return 0, fmt.Errorf("insert or update on table \"subjects\" violates foreign key constraint: course %s", r.CourseID)
		}
	}

	taken := codeSet(s.subjects, func(sub Subject) string { return sub.Code })
	n := 0
	for _, r := range recs {
		if taken[r.Code] {
			continue
		}
		taken[r.Code] = true
		s.subjects = append(s.subjects, Subject{ID: uuid.New(), SubjectRecord: r})
		n++
	}
	return n, nil
}

func (s *Store) InsertAccounts(ctx context.Context, recs []core.AccountRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := codeSet(s.accounts, func(a Account) string { return a.Email })
	n := 0
	for _, r := range recs {
		if taken[r.Email] {
			continue
		}
		taken[r.Email] = true
		s.accounts = append(s.accounts, Account{ID: uuid.New(), Seq: s.nextSeq(), AccountRecord: r})
		n++
	}
	return n, nil
}

func (s *Store) CreateAccount(ctx context.Context, rec core.AccountRecord) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == rec.Email {
			return uuid.Nil, fmt.Errorf("%w: email %q", core.ErrDuplicateNaturalKey, rec.Email)
		}
	}

	a := Account{ID: uuid.New(), Seq: s.nextSeq(), AccountRecord: rec}
	s.accounts = append(s.accounts, a)
	return a.ID, nil
}

func (s *Store) CreateStudentProfile(ctx context.Context, p core.StudentProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.ProfileHook != nil {
		if err := s.ProfileHook(p.EnrollmentNo); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasAccount(p.AccountID) {
		return fmt.Errorf("insert or update on table \"students\" violates foreign key constraint: user %s", p.AccountID)
	}
	for _, st := range s.students {
		if st.EnrollmentNo == p.EnrollmentNo {
			return fmt.Errorf("duplicate key value violates unique constraint \"students_enrollment_no_key\": %q", p.EnrollmentNo)
		}
	}

	s.students = append(s.students, StudentProfile{Seq: s.nextSeq(), StudentProfile: p})
	return nil
}

func (s *Store) CreateFacultyProfile(ctx context.Context, p core.FacultyProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.ProfileHook != nil {
		if err := s.ProfileHook(p.EmployeeID); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasAccount(p.AccountID) {
		return fmt.Errorf("insert or update on table \"faculty\" violates foreign key constraint: user %s", p.AccountID)
	}
	for _, f := range s.faculty {
		if f.EmployeeID == p.EmployeeID {
			return fmt.Errorf("duplicate key value violates unique constraint \"faculty_employee_id_key\": %q", p.EmployeeID)
		}
	}

	s.faculty = append(s.faculty, FacultyProfile{Seq: s.nextSeq(), FacultyProfile: p})
	return nil
}

func (s *Store) RecordImportRun(ctx context.Context, run core.ImportRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

// ListImportRuns returns runs newest first.
func (s *Store) ListImportRuns(ctx context.Context, category core.Category, limit int) ([]core.ImportRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.ImportRun
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		if s.runs[i].Category == category {
			out = append(out, s.runs[i])
		}
	}
	return out, nil
}

// Departments returns a snapshot of stored departments in insertion order.
func (s *Store) Departments() []core.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.departments)
}

// Courses returns a snapshot of stored courses in insertion order.
func (s *Store) Courses() []core.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.courses)
}

// Subjects returns a snapshot of stored subjects in insertion order.
func (s *Store) Subjects() []Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.subjects)
}

// Accounts returns a snapshot of stored accounts in creation order.
func (s *Store) Accounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.accounts)
}

// Students returns a snapshot of stored student profiles.
func (s *Store) Students() []StudentProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.students)
}

// Faculty returns a snapshot of stored faculty profiles.
func (s *Store) Faculty() []FacultyProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.faculty)
}

func (s *Store) hasDepartment(id uuid.UUID) bool {
	return slices.ContainsFunc(s.departments, func(d core.Department) bool { return d.ID == id })
}

func (s *Store) hasCourse(id uuid.UUID) bool {
	return slices.ContainsFunc(s.courses, func(c core.Course) bool { return c.ID == id })
}

func (s *Store) hasAccount(id uuid.UUID) bool {
	return slices.ContainsFunc(s.accounts, func(a Account) bool { return a.ID == id })
}

func codeSet[T any](items []T, key func(T) string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[key(it)] = true
	}
	return set
}

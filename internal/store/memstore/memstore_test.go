package memstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/JonMunkholm/institute/internal/core"
)

func TestInsertDepartments_SkipsExistingCodes(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.SeedDepartment("CS", "Computer Science")

	n, err := s.InsertDepartments(ctx, []core.DepartmentRecord{
		{Name: "Computer Science", Code: "CS"},
		{Name: "Electronics", Code: "EC"},
		{Name: "Electronics again", Code: "EC"},
	})
	if err != nil {
		t.Fatalf("InsertDepartments() error = %v", err)
	}
	if n != 1 {
		t.Errorf("InsertDepartments() = %d, want 1", n)
	}
	if got := len(s.Departments()); got != 2 {
		t.Errorf("departments = %d, want 2", got)
	}
}

func TestInsertCourses_ForeignKeyIsAllOrNothing(t *testing.T) {
	s := New()
	ctx := context.Background()
	dept := s.SeedDepartment("CS", "Computer Science")

	_, err := s.InsertCourses(ctx, []core.CourseRecord{
		{Name: "B.Tech", Code: "BTCS", DepartmentID: dept},
		{Name: "Orphan", Code: "ORPH", DepartmentID: uuid.New()},
	})
	if err == nil || !strings.Contains(err.Error(), "foreign key") {
		t.Fatalf("InsertCourses() error = %v, want foreign key violation", err)
	}
	if got := len(s.Courses()); got != 0 {
		t.Errorf("courses = %d, want 0", got)
	}
}

func TestInsertSubjects_RequiresCourse(t *testing.T) {
	s := New()
	ctx := context.Background()
	dept := s.SeedDepartment("CS", "Computer Science")
	course := s.SeedCourse("BTCS", "B.Tech", dept)

	n, err := s.InsertSubjects(ctx, []core.SubjectRecord{{Name: "DS", Code: "CS201", CourseID: course}})
	if err != nil || n != 1 {
		t.Fatalf("InsertSubjects() = %d, %v, want 1, nil", n, err)
	}
	if _, err := s.InsertSubjects(ctx, []core.SubjectRecord{{Name: "X", Code: "X1", CourseID: uuid.New()}}); err == nil {
		t.Error("InsertSubjects() with unknown course error = nil, want foreign key violation")
	}
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()
	rec := core.AccountRecord{DisplayName: "A", Email: "a@x.edu", Role: core.RoleStudent}

	first, err := s.CreateAccount(ctx, rec)
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	if first == uuid.Nil {
		t.Error("CreateAccount() returned nil id")
	}

	_, err = s.CreateAccount(ctx, rec)
	if !errors.Is(err, core.ErrDuplicateNaturalKey) {
		t.Errorf("second CreateAccount() error = %v, want ErrDuplicateNaturalKey", err)
	}

	n, err := s.InsertAccounts(ctx, []core.AccountRecord{rec, {DisplayName: "B", Email: "b@x.edu", Role: core.RoleAdmin}})
	if err != nil {
		t.Fatalf("InsertAccounts() error = %v", err)
	}
	if n != 1 {
		t.Errorf("InsertAccounts() = %d, want 1", n)
	}
}

func TestCreateStudentProfile_Constraints(t *testing.T) {
	s := New()
	ctx := context.Background()
	acct, _ := s.CreateAccount(ctx, core.AccountRecord{Email: "a@x.edu", Role: core.RoleStudent})

	tests := []struct {
		name    string
		profile core.StudentProfile
		wantErr string
	}{
		{"ok", core.StudentProfile{AccountID: acct, EnrollmentNo: "E1", FirstName: "A"}, ""},
		{"unknown account", core.StudentProfile{AccountID: uuid.New(), EnrollmentNo: "E2", FirstName: "B"}, "foreign key"},
		{"duplicate enrollment", core.StudentProfile{AccountID: acct, EnrollmentNo: "E1", FirstName: "C"}, "duplicate key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateStudentProfile(ctx, tt.profile)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("CreateStudentProfile() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("CreateStudentProfile() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestProfileHook_FailsBeforeStoring(t *testing.T) {
	s := New()
	ctx := context.Background()
	hookErr := errors.New("injected")
	s.ProfileHook = func(key string) error {
		if key == "EMP1" {
			return hookErr
		}
		return nil
	}
	acct, _ := s.CreateAccount(ctx, core.AccountRecord{Email: "f@x.edu", Role: core.RoleFaculty})

	err := s.CreateFacultyProfile(ctx, core.FacultyProfile{AccountID: acct, EmployeeID: "EMP1", FirstName: "F"})
	if !errors.Is(err, hookErr) {
		t.Errorf("CreateFacultyProfile() error = %v, want %v", err, hookErr)
	}
	if got := len(s.Faculty()); got != 0 {
		t.Errorf("faculty = %d, want 0", got)
	}
}

func TestSeq_IsMonotonicAcrossAccountsAndProfiles(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			email := "u" + string(rune('a'+i)) + "@x.edu"
			id, err := s.CreateAccount(ctx, core.AccountRecord{Email: email, Role: core.RoleStudent})
			if err != nil {
				t.Errorf("CreateAccount() error = %v", err)
				return
			}
			if err := s.CreateStudentProfile(ctx, core.StudentProfile{AccountID: id, EnrollmentNo: email, FirstName: "U"}); err != nil {
				t.Errorf("CreateStudentProfile() error = %v", err)
			}
		}()
	}
	wg.Wait()

	seqs := make(map[uuid.UUID]int64)
	for _, a := range s.Accounts() {
		seqs[a.ID] = a.Seq
	}
	for _, p := range s.Students() {
		if p.Seq <= seqs[p.AccountID] {
			t.Errorf("profile seq %d <= account seq %d", p.Seq, seqs[p.AccountID])
		}
	}
}

func TestListImportRuns_NewestFirstAndFiltered(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i, c := range []core.Category{core.CategoryDepartment, core.CategoryCourse, core.CategoryDepartment, core.CategoryDepartment} {
		if err := s.RecordImportRun(ctx, core.ImportRun{ID: uuid.New(), Category: c, Imported: i}); err != nil {
			t.Fatalf("RecordImportRun() error = %v", err)
		}
	}

	runs, err := s.ListImportRuns(ctx, core.CategoryDepartment, 2)
	if err != nil {
		t.Fatalf("ListImportRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListImportRuns() returned %d, want 2", len(runs))
	}
	if runs[0].Imported != 3 || runs[1].Imported != 2 {
		t.Errorf("order = [%d %d], want [3 2]", runs[0].Imported, runs[1].Imported)
	}
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.ListDepartments(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ListDepartments() error = %v, want context.Canceled", err)
	}
	if _, err := s.CreateAccount(ctx, core.AccountRecord{Email: "a@x.edu"}); !errors.Is(err, context.Canceled) {
		t.Errorf("CreateAccount() error = %v, want context.Canceled", err)
	}
}

package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is one of the fixed import kinds. It selects the column schema and
// the importer that turns rows into records.
type Category string

const (
	CategoryDepartment Category = "department"
	CategoryCourse     Category = "course"
	CategorySubject    Category = "subject"
	CategoryAdmin      Category = "admin"
	CategoryStudents   Category = "students"
	CategoryFaculty    Category = "faculty"
)

// ColumnSchema is the ordered column list of a category plus one sample row
// whose keys are exactly those columns.
type ColumnSchema struct {
	Columns []string `json:"columns"`
	Sample  RawRow   `json:"sample"`
}

// RawRow maps a column name to the cell text of one spreadsheet row.
type RawRow map[string]string

// Get returns the trimmed cell value for col, or "" when the column is absent.
func (r RawRow) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// KeyRef is what a natural key resolves to.
type KeyRef struct {
	ID   uuid.UUID
	Name string
}

// NaturalKeyIndex maps a human-entered code (department "CS") to the
// referenced entity. It is built once per batch and never cached.
type NaturalKeyIndex map[string]KeyRef

// Resolve looks up a code after trimming surrounding whitespace.
func (idx NaturalKeyIndex) Resolve(code string) (KeyRef, bool) {
	code = strings.TrimSpace(code)
	if code == "" || idx == nil {
		return KeyRef{}, false
	}
	ref, ok := idx[code]
	return ref, ok
}

// Lookups holds the indexes a batch needs. Unused indexes stay nil.
type Lookups struct {
	Departments NaturalKeyIndex
	Courses     NaturalKeyIndex
}

// Role is the fixed role written on imported accounts.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
	RoleFaculty Role = "FACULTY"
)

// Default passwords applied when a row carries none.
const (
	DefaultAdminPassword   = "Admin@123"
	DefaultStudentPassword = "Student@123"
	DefaultFacultyPassword = "Faculty@123"
)

// DepartmentRecord is a department ready for persistence.
type DepartmentRecord struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

// CourseRecord is a course whose department code has been resolved.
type CourseRecord struct {
	Name         string    `json:"name" validate:"required"`
	Code         string    `json:"code" validate:"required"`
	DepartmentID uuid.UUID `json:"departmentId"`
	Fees         float64   `json:"fees"`
}

// SubjectRecord is a subject whose course code has been resolved.
type SubjectRecord struct {
	Name     string    `json:"name" validate:"required"`
	Code     string    `json:"code" validate:"required"`
	CourseID uuid.UUID `json:"courseId"`
}

// AccountRecord is a login account. Password holds the plain text until the
// gateway hashes it; only PasswordHash ever reaches the store.
type AccountRecord struct {
	DisplayName  string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Phone        string `json:"phone"`
	Role         Role   `json:"role" validate:"required"`
	Password     string `json:"-" validate:"required,pwbytes"`
	PasswordHash []byte `json:"-"`
	Active       bool   `json:"active"`
}

// Address is one postal address block.
type Address struct {
	Line    string `json:"line"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country,omitempty"`
}

// ContactDetails groups the address blocks and alternates of a profile.
type ContactDetails struct {
	Permanent      Address `json:"permanent"`
	Correspondence Address `json:"correspondence"`
	AlternatePhone string  `json:"alternatePhone,omitempty"`
	AlternateEmail string  `json:"alternateEmail,omitempty"`
}

// Parent is a father or mother block.
type Parent struct {
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Guardian is the local guardian block.
type Guardian struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Relation string `json:"relation,omitempty"`
}

// FamilyDetails is a student's family sub-document.
type FamilyDetails struct {
	Father   Parent   `json:"father"`
	Mother   Parent   `json:"mother"`
	Guardian Guardian `json:"guardian"`
}

// SchoolRecord is one class-X or class-XII result block.
type SchoolRecord struct {
	Board       string `json:"board"`
	School      string `json:"school"`
	Percentage  string `json:"percentage"`
	PassingYear string `json:"passingYear"`
}

// AcademicHistory is a student's prior schooling.
type AcademicHistory struct {
	ClassX   SchoolRecord `json:"classX"`
	ClassXII SchoolRecord `json:"classXII"`
}

// AdmissionDetails describes how a student was admitted.
type AdmissionDetails struct {
	ProgramLevel  string `json:"programLevel"`
	AdmissionType string `json:"admissionType"`
	Mode          string `json:"mode"`
	Session       string `json:"session"`
}

// ExperienceDetails is a faculty member's experience sub-document.
type ExperienceDetails struct {
	TotalTeachingExperience string `json:"totalTeachingExperience"`
}

// Affiliation is a department or course named on a profile. Name is the
// resolved human name, or the code verbatim when it did not resolve.
type Affiliation struct {
	ID   *uuid.UUID `json:"id,omitempty"`
	Code string     `json:"code"`
	Name string     `json:"name"`
}

// StudentProfile is the profile half of a student import row.
type StudentProfile struct {
	AccountID    uuid.UUID        `json:"accountId"`
	EnrollmentNo string           `json:"enrollmentNo" validate:"required"`
	FirstName    string           `json:"firstName" validate:"required"`
	MiddleName   string           `json:"middleName,omitempty"`
	LastName     string           `json:"lastName"`
	DateOfBirth  *time.Time       `json:"dateOfBirth,omitempty"`
	Gender       string           `json:"gender,omitempty"`
	BloodGroup   string           `json:"bloodGroup,omitempty"`
	Nationality  string           `json:"nationality,omitempty"`
	Department   Affiliation      `json:"department"`
	Course       Affiliation      `json:"course"`
	Contact      ContactDetails   `json:"contact"`
	Family       FamilyDetails    `json:"family"`
	Academics    AcademicHistory  `json:"academics"`
	Admission    AdmissionDetails `json:"admission"`
}

// FacultyProfile is the profile half of a faculty import row.
type FacultyProfile struct {
	AccountID      uuid.UUID         `json:"accountId"`
	EmployeeID     string            `json:"employeeId" validate:"required"`
	FirstName      string            `json:"firstName" validate:"required"`
	LastName       string            `json:"lastName"`
	DateOfBirth    *time.Time        `json:"dateOfBirth,omitempty"`
	Gender         string            `json:"gender,omitempty"`
	Designation    string            `json:"designation,omitempty"`
	Qualification  string            `json:"qualification,omitempty"`
	Specialization string            `json:"specialization,omitempty"`
	Department     Affiliation       `json:"department"`
	Contact        ContactDetails    `json:"contact"`
	Experience     ExperienceDetails `json:"experience"`
}

// Department is an existing department as read for reference resolution.
type Department struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// Course is an existing course as read for reference resolution.
type Course struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	DepartmentID uuid.UUID `json:"departmentId"`
}

// ImportResult summarises one bulk import. Imported is the only count callers
// can rely on; Dropped and Skipped are best-effort diagnostics.
type ImportResult struct {
	BatchID   string        `json:"batchId"`
	Category  Category      `json:"category"`
	Submitted int           `json:"submitted"`
	Imported  int           `json:"imported"`
	Dropped   int           `json:"dropped"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration"`
}

// ImportRunStatus is the final state of a recorded import.
type ImportRunStatus string

const (
	RunSucceeded ImportRunStatus = "succeeded"
	RunFailed    ImportRunStatus = "failed"
)

// ImportRun is one entry of the import history.
type ImportRun struct {
	ID         uuid.UUID       `json:"id"`
	Category   Category        `json:"category"`
	Submitted  int             `json:"submitted"`
	Imported   int             `json:"imported"`
	Status     ImportRunStatus `json:"status"`
	Error      string          `json:"error,omitempty"`
	IPAddress  string          `json:"ipAddress,omitempty"`
	UserAgent  string          `json:"userAgent,omitempty"`
	DurationMs int64           `json:"durationMs"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ReferenceReader reads the entities other categories reference by code.
type ReferenceReader interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	ListCourses(ctx context.Context) ([]Course, error)
}

// RecordWriter persists import records.
//
// The Insert* methods are duplicate tolerant: rows whose natural key already
// exists are skipped and the number actually written is returned. They write
// all-or-nothing for any other failure.
//
// CreateAccount returns ErrDuplicateNaturalKey when the email is taken.
type RecordWriter interface {
	InsertDepartments(ctx context.Context, recs []DepartmentRecord) (int, error)
	InsertCourses(ctx context.Context, recs []CourseRecord) (int, error)
	InsertSubjects(ctx context.Context, recs []SubjectRecord) (int, error)
	InsertAccounts(ctx context.Context, recs []AccountRecord) (int, error)
	CreateAccount(ctx context.Context, rec AccountRecord) (uuid.UUID, error)
	CreateStudentProfile(ctx context.Context, p StudentProfile) error
	CreateFacultyProfile(ctx context.Context, p FacultyProfile) error
}

// HistoryStore records and lists import runs.
type HistoryStore interface {
	RecordImportRun(ctx context.Context, run ImportRun) error
	ListImportRuns(ctx context.Context, category Category, limit int) ([]ImportRun, error)
}

// Store is everything the import service needs from durable storage.
type Store interface {
	ReferenceReader
	RecordWriter
	HistoryStore
	Ping(ctx context.Context) error
}

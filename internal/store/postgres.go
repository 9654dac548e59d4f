// Package store holds the Postgres implementation of core.Store. The
// in-memory implementation lives in store/memstore.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/institute/internal/core"
	db "github.com/JonMunkholm/institute/internal/database"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Postgres is a core.Store over a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

var _ core.Store = (*Postgres)(nil)

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) ListDepartments(ctx context.Context) ([]core.Department, error) {
	rows, err := db.New(p.pool).ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Department, len(rows))
	for i, r := range rows {
		out[i] = core.Department{ID: FromPgUUID(r.ID), Code: r.Code, Name: r.Name}
	}
	return out, nil
}

func (p *Postgres) ListCourses(ctx context.Context) ([]core.Course, error) {
	rows, err := db.New(p.pool).ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Course, len(rows))
	for i, r := range rows {
		out[i] = core.Course{
			ID:           FromPgUUID(r.ID),
			Code:         r.Code,
			Name:         r.Name,
			DepartmentID: FromPgUUID(r.DepartmentID),
		}
	}
	return out, nil
}

// inTx runs fn in one transaction and returns the rows it reports.
func (p *Postgres) inTx(ctx context.Context, fn func(q *db.Queries) (int64, error)) (int, error) {
	var n int64
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		var err error
		n, err = fn(db.New(tx))
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (p *Postgres) InsertDepartments(ctx context.Context, recs []core.DepartmentRecord) (int, error) {
	params := db.InsertDepartmentsParams{
		Names: make([]string, len(recs)),
		Codes: make([]string, len(recs)),
	}
	for i, r := range recs {
		params.Names[i] = r.Name
		params.Codes[i] = r.Code
	}
	return p.inTx(ctx, func(q *db.Queries) (int64, error) {
		return q.InsertDepartments(ctx, params)
	})
}

func (p *Postgres) InsertCourses(ctx context.Context, recs []core.CourseRecord) (int, error) {
	params := db.InsertCoursesParams{
		Names:         make([]string, len(recs)),
		Codes:         make([]string, len(recs)),
		DepartmentIds: make([]pgtype.UUID, len(recs)),
		Fees:          make([]pgtype.Numeric, len(recs)),
	}
	for i, r := range recs {
		params.Names[i] = r.Name
		params.Codes[i] = r.Code
		params.DepartmentIds[i] = ToPgUUID(r.DepartmentID)
		params.Fees[i] = ToPgNumeric(r.Fees)
	}
	return p.inTx(ctx, func(q *db.Queries) (int64, error) {
		return q.InsertCourses(ctx, params)
	})
}

func (p *Postgres) InsertSubjects(ctx context.Context, recs []core.SubjectRecord) (int, error) {
	params := db.InsertSubjectsParams{
		Names:     make([]string, len(recs)),
		Codes:     make([]string, len(recs)),
		CourseIds: make([]pgtype.UUID, len(recs)),
	}
	for i, r := range recs {
		params.Names[i] = r.Name
		params.Codes[i] = r.Code
		params.CourseIds[i] = ToPgUUID(r.CourseID)
	}
	return p.inTx(ctx, func(q *db.Queries) (int64, error) {
		return q.InsertSubjects(ctx, params)
	})
}

func (p *Postgres) InsertAccounts(ctx context.Context, recs []core.AccountRecord) (int, error) {
	params := insertUsersParams(recs)
	return p.inTx(ctx, func(q *db.Queries) (int64, error) {
		return q.InsertUsers(ctx, params)
	})
}

// insertUsersParams builds the column arrays of a bulk account insert. An
// empty phone is written as NULL, the same as CreateAccount.
func insertUsersParams(recs []core.AccountRecord) db.InsertUsersParams {
	params := db.InsertUsersParams{
		Names:          make([]string, len(recs)),
		Emails:         make([]string, len(recs)),
		Phones:         make([]pgtype.Text, len(recs)),
		Roles:          make([]string, len(recs)),
		PasswordHashes: make([][]byte, len(recs)),
		Actives:        make([]bool, len(recs)),
	}
	for i, r := range recs {
		params.Names[i] = r.DisplayName
		params.Emails[i] = r.Email
		params.Phones[i] = ToPgText(r.Phone)
		params.Roles[i] = string(r.Role)
		params.PasswordHashes[i] = r.PasswordHash
		params.Actives[i] = r.Active
	}
	return params
}

// CreateAccount inserts one account. A taken email returns no row, which is
// reported as core.ErrDuplicateNaturalKey.
func (p *Postgres) CreateAccount(ctx context.Context, rec core.AccountRecord) (uuid.UUID, error) {
	id, err := db.New(p.pool).CreateUser(ctx, db.CreateUserParams{
		Name:         rec.DisplayName,
		Email:        rec.Email,
		Phone:        ToPgText(rec.Phone),
		Role:         string(rec.Role),
		PasswordHash: rec.PasswordHash,
		Active:       rec.Active,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("%w: email %q", core.ErrDuplicateNaturalKey, rec.Email)
	}
	if err != nil {
		return uuid.Nil, classify(err, "email", rec.Email)
	}
	return FromPgUUID(id), nil
}

func (p *Postgres) CreateStudentProfile(ctx context.Context, s core.StudentProfile) error {
	docs, err := marshalDocs(s.Contact, s.Family, s.Academics, s.Admission)
	if err != nil {
		return err
	}

	err = db.New(p.pool).InsertStudent(ctx, db.InsertStudentParams{
		UserID:         ToPgUUID(s.AccountID),
		EnrollmentNo:   s.EnrollmentNo,
		FirstName:      s.FirstName,
		MiddleName:     ToPgText(s.MiddleName),
		LastName:       ToPgText(s.LastName),
		DateOfBirth:    ToPgDate(s.DateOfBirth),
		Gender:         ToPgText(s.Gender),
		BloodGroup:     ToPgText(s.BloodGroup),
		Nationality:    ToPgText(s.Nationality),
		DepartmentID:   ToPgUUIDPtr(s.Department.ID),
		DepartmentName: ToPgText(s.Department.Name),
		CourseID:       ToPgUUIDPtr(s.Course.ID),
		CourseName:     ToPgText(s.Course.Name),
		Contact:        docs[0],
		Family:         docs[1],
		Academics:      docs[2],
		Admission:      docs[3],
	})
	if err != nil {
		return classify(err, "enrollment number", s.EnrollmentNo)
	}
	return nil
}

func (p *Postgres) CreateFacultyProfile(ctx context.Context, f core.FacultyProfile) error {
	docs, err := marshalDocs(f.Contact, f.Experience)
	if err != nil {
		return err
	}

	err = db.New(p.pool).InsertFaculty(ctx, db.InsertFacultyParams{
		UserID:         ToPgUUID(f.AccountID),
		EmployeeID:     f.EmployeeID,
		FirstName:      f.FirstName,
		LastName:       ToPgText(f.LastName),
		DateOfBirth:    ToPgDate(f.DateOfBirth),
		Gender:         ToPgText(f.Gender),
		Designation:    ToPgText(f.Designation),
		Qualification:  ToPgText(f.Qualification),
		Specialization: ToPgText(f.Specialization),
		DepartmentID:   ToPgUUIDPtr(f.Department.ID),
		DepartmentName: ToPgText(f.Department.Name),
		Contact:        docs[0],
		Experience:     docs[1],
	})
	if err != nil {
		return classify(err, "employee id", f.EmployeeID)
	}
	return nil
}

func (p *Postgres) RecordImportRun(ctx context.Context, run core.ImportRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	return db.New(p.pool).InsertImportRun(ctx, db.InsertImportRunParams{
		ID:         ToPgUUID(run.ID),
		Category:   string(run.Category),
		Submitted:  int32(run.Submitted),
		Imported:   int32(run.Imported),
		Status:     string(run.Status),
		Error:      ToPgText(run.Error),
		IpAddress:  ToPgText(run.IPAddress),
		UserAgent:  ToPgText(run.UserAgent),
		DurationMs: run.DurationMs,
		CreatedAt:  pgtype.Timestamptz{Time: run.CreatedAt, Valid: true},
	})
}

func (p *Postgres) ListImportRuns(ctx context.Context, category core.Category, limit int) ([]core.ImportRun, error) {
	rows, err := db.New(p.pool).ListImportRuns(ctx, db.ListImportRunsParams{
		Category: string(category),
		Limit:    int32(limit),
	})
	if err != nil {
		return nil, err
	}

	out := make([]core.ImportRun, len(rows))
	for i, r := range rows {
		out[i] = importRunFromRow(r)
	}
	return out, nil
}

func importRunFromRow(r db.ImportRun) core.ImportRun {
	var created time.Time
	if r.CreatedAt.Valid {
		created = r.CreatedAt.Time
	}
	return core.ImportRun{
		ID:         FromPgUUID(r.ID),
		Category:   core.Category(r.Category),
		Submitted:  int(r.Submitted),
		Imported:   int(r.Imported),
		Status:     core.ImportRunStatus(r.Status),
		Error:      FromPgText(r.Error),
		IPAddress:  FromPgText(r.IpAddress),
		UserAgent:  FromPgText(r.UserAgent),
		DurationMs: r.DurationMs,
		CreatedAt:  created,
	}
}

// marshalDocs encodes profile sub-documents for jsonb columns.
func marshalDocs(docs ...any) ([][]byte, error) {
	out := make([][]byte, len(docs))
	for i, d := range docs {
		b, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("encode profile document: %w", err)
		}
		out[i] = b
	}
	return out, nil
}

// classify wraps unique violations in core.ErrDuplicateNaturalKey and keeps
// the driver message for everything else.
func classify(err error, field, key string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s %q: %v", core.ErrDuplicateNaturalKey, field, key, err)
	}
	return err
}

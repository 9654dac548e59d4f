package core

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JonMunkholm/institute/internal/logging"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// DefaultImportTimeout bounds one bulk import when Options.Timeout is unset.
const DefaultImportTimeout = 100 * time.Second

// Options tunes a Service. Zero values select defaults.
type Options struct {
	MaxRows       int           // 0 = unlimited
	MaxConcurrent int           // concurrent bulk imports
	MaxWait       time.Duration // wait for an import slot
	Workers       int           // students/faculty row workers
	Timeout       time.Duration // per bulk import
	BcryptCost    int
	Observer      ImportObserver
}

// ImportObserver receives import lifecycle events, typically for metrics.
// ImportFinished always receives a non-nil result; counts are partial when
// err is set.
type ImportObserver interface {
	ImportStarted(category Category)
	ImportFinished(category Category, res *ImportResult, err error)
}

type nopObserver struct{}

func (nopObserver) ImportStarted(Category)                       {}
func (nopObserver) ImportFinished(Category, *ImportResult, error) {}

// Service runs template, parse and bulk import operations against a Store.
type Service struct {
	store    Store
	limiter  *ImportLimiter
	validate *validator.Validate
	observer ImportObserver
	opts     Options
}

// NewService creates a Service.
func NewService(store Store, opts Options) *Service {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultImportTimeout
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Service{
		store:    store,
		limiter:  NewImportLimiter(opts.MaxConcurrent, opts.MaxWait),
		validate: newValidator(),
		observer: observer,
		opts:     opts,
	}
}

// newValidator reports field errors by JSON name, falling back to the Go
// field name for fields hidden from JSON.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// bcrypt rejects input longer than 72 bytes.
	_ = v.RegisterValidation("pwbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return v
}

// CategoryInfo describes a category for the catalogue endpoint.
type CategoryInfo struct {
	Category       Category `json:"category"`
	Label          string   `json:"label"`
	Columns        []string `json:"columns"`
	ReferenceSheet Category `json:"referenceSheet,omitempty"`
}

// Categories lists every import category in catalogue order.
func (s *Service) Categories() []CategoryInfo {
	defs := All()
	infos := make([]CategoryInfo, len(defs))
	for i, def := range defs {
		schema, _ := GetSchema(def.Category)
		infos[i] = CategoryInfo{
			Category:       def.Category,
			Label:          def.Label,
			Columns:        schema.Columns,
			ReferenceSheet: def.ReferenceSheet,
		}
	}
	return infos
}

// TemplateFile is a rendered template ready for download.
type TemplateFile struct {
	Filename string
	Data     []byte
}

// Template renders the downloadable template of a category. Course and
// subject templates list the department or course codes that exist now.
func (s *Service) Template(ctx context.Context, category Category) (*TemplateFile, error) {
	def, err := Lookup(category)
	if err != nil {
		return nil, err
	}

	var ref *referenceSheet
	if def.ReferenceSheet != "" {
		ref, err = s.referenceSheet(ctx, def.ReferenceSheet)
		if err != nil {
			return nil, err
		}
	}

	data, err := renderTemplate(string(def.Category), def.Schema, ref)
	if err != nil {
		return nil, fmt.Errorf("render %s template: %w", category, err)
	}

	return &TemplateFile{
		Filename: fmt.Sprintf("%s_template.xlsx", category),
		Data:     data,
	}, nil
}

func (s *Service) referenceSheet(ctx context.Context, category Category) (*referenceSheet, error) {
	def, err := Lookup(category)
	if err != nil {
		return nil, err
	}

	var entries []ReferenceEntry
	switch category {
	case CategoryDepartment:
		depts, err := s.store.ListDepartments(ctx)
		if err != nil {
			return nil, fmt.Errorf("list departments: %w", err)
		}
		for _, d := range depts {
			entries = append(entries, ReferenceEntry{Code: d.Code, Name: d.Name})
		}
	case CategoryCourse:
		courses, err := s.store.ListCourses(ctx)
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		for _, c := range courses {
			entries = append(entries, ReferenceEntry{Code: c.Code, Name: c.Name})
		}
	default:
		return nil, fmt.Errorf("%w: %q has no reference sheet", ErrInvalidCategory, string(category))
	}

	return &referenceSheet{title: def.Label, entries: entries}, nil
}

// Parse reads an uploaded spreadsheet into rows. Nothing is written.
func (s *Service) Parse(ctx context.Context, category Category, data []byte) (*ParsedUpload, error) {
	if _, err := Lookup(category); err != nil {
		return nil, err
	}

	parsed, err := parseUpload(data)
	if err != nil {
		return nil, err
	}
	if err := s.checkRowCount(len(parsed.Rows)); err != nil {
		return nil, err
	}

	logging.ForImport(ctx, string(category)).Debug("upload parsed",
		"rows", len(parsed.Rows),
		"columns", len(parsed.Columns),
	)
	return parsed, nil
}

func (s *Service) checkRowCount(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: no rows submitted", ErrEmptyInput)
	}
	if s.opts.MaxRows > 0 && n > s.opts.MaxRows {
		return fmt.Errorf("%w: %d rows, limit is %d", ErrTooManyRows, n, s.opts.MaxRows)
	}
	return nil
}

// BulkImport transforms and persists rows of one category.
//
// Rows whose natural key reference does not resolve are dropped and rows
// whose natural key already exists are skipped; neither is an error. The
// returned Imported count may therefore be lower than the rows submitted.
// For students and faculty, a profile failure aborts the batch and returns a
// *ProfileCreationError.
func (s *Service) BulkImport(ctx context.Context, category Category, rows []RawRow) (*ImportResult, error) {
	def, err := Lookup(category)
	if err != nil {
		return nil, err
	}
	if err := s.checkRowCount(len(rows)); err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	id := uuid.New()
	log := logging.ForImport(ctx, string(category), "batch_id", id.String())

	importCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	res := &ImportResult{
		BatchID:   id.String(),
		Category:  category,
		Submitted: len(rows),
	}

	s.observer.ImportStarted(category)
	log.Info("import started", "rows", len(rows))
	start := time.Now()

	out, err := s.runImport(importCtx, def, rows, log)

	res.Imported = out.imported
	res.Dropped = out.dropped
	res.Skipped = out.skipped
	res.Duration = time.Since(start)

	s.observer.ImportFinished(category, res, err)
	s.recordRun(ctx, log, id, res, err)

	if err != nil {
		log.Error("import failed",
			"imported", res.Imported,
			"duration", res.Duration,
			"error", err,
		)
		return nil, err
	}

	log.Info("import finished",
		"submitted", res.Submitted,
		"imported", res.Imported,
		"dropped", res.Dropped,
		"skipped", res.Skipped,
		"duration", res.Duration,
	)
	return res, nil
}

func (s *Service) runImport(ctx context.Context, def Definition, rows []RawRow, log *slog.Logger) (batchOutcome, error) {
	lk, err := resolveLookups(ctx, s.store, def.importer.references())
	if err != nil {
		return batchOutcome{}, err
	}

	env := &batchEnv{
		store:      s.store,
		lookups:    lk,
		validate:   s.validate,
		bcryptCost: s.opts.BcryptCost,
		workers:    s.opts.Workers,
		log:        log,
	}

	out, err := def.importer.run(ctx, env, rows)
	if err != nil {
		return out, fmt.Errorf("import %s: %w", def.Category, err)
	}
	return out, nil
}

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// LimiterStatus reports import slot usage.
func (s *Service) LimiterStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// Drain waits for running imports to finish or ctx to end.
func (s *Service) Drain(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

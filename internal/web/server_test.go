package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/JonMunkholm/institute/internal/config"
	"github.com/JonMunkholm/institute/internal/core"
	"github.com/JonMunkholm/institute/internal/metrics"
	"github.com/JonMunkholm/institute/internal/store/memstore"
)

const testAPIKey = "test-key"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 10 * time.Second},
		Import: config.ImportConfig{MaxFileSize: 1 << 20, MaxRows: 100},
		Security: config.SecurityConfig{
			RequireAPIKey: true,
			APIKeys:       []string{testAPIKey},
		},
	}
}

func newTestServer(t *testing.T, store *memstore.Store) *Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := core.NewService(store, core.Options{
		MaxRows:    100,
		Workers:    2,
		BcryptCost: bcrypt.MinCost,
		Observer:   metrics.NewImports(reg),
	})
	return NewServer(svc, testConfig(), reg)
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if req.Header.Get("X-API-Key") == "" {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, s, req)
}

func uploadRequest(t *testing.T, path string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if file != nil {
		part, err := mw.CreateFormFile("file", "upload.xlsx")
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		part.Write(file)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func xlsx(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			f.SetCellStr("Sheet1", cell, v)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}
	return buf.Bytes()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestHealthz_NoAuth(t *testing.T) {
	s := newTestServer(t, memstore.New())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestImportRoutes_RequireAPIKey(t *testing.T) {
	s := newTestServer(t, memstore.New())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/import/categories", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCategories(t *testing.T) {
	s := newTestServer(t, memstore.New())
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/import/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	infos := decode[[]core.CategoryInfo](t, rec)
	if len(infos) != 6 {
		t.Errorf("got %d categories, want 6", len(infos))
	}
}

func TestTemplate(t *testing.T) {
	s := newTestServer(t, memstore.New())
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/import/template/department", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "department_template.xlsx") {
		t.Errorf("Content-Disposition = %q", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("department")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) < 1 || strings.Join(rows[0], ",") != "name,code" {
		t.Errorf("header = %v, want [name code]", rows)
	}
}

func TestUnknownCategory_Returns400(t *testing.T) {
	s := newTestServer(t, memstore.New())

	reqs := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/import/template/library", nil),
		httptest.NewRequest(http.MethodGet, "/import/history/library", nil),
		uploadRequest(t, "/import/parse/library", []byte("x")),
		httptest.NewRequest(http.MethodPost, "/import/bulk/library", strings.NewReader(`{"data":[{"a":"b"}]}`)),
	}
	for _, req := range reqs {
		rec := do(t, s, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s %s status = %d, want 400", req.Method, req.URL.Path, rec.Code)
			continue
		}
		resp := decode[ErrorResponse](t, rec)
		if resp.Code != "IMP001" {
			t.Errorf("%s code = %q, want IMP001", req.URL.Path, resp.Code)
		}
	}
}

func TestParse(t *testing.T) {
	s := newTestServer(t, memstore.New())
	file := xlsx(t, [][]string{
		{"name", "code"},
		{"Computer Science", "CS"},
		{"Electronics", "EC"},
	})

	rec := do(t, s, uploadRequest(t, "/import/parse/department", file))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	resp := decode[ParseResponse](t, rec)
	if len(resp.Data) != 2 {
		t.Fatalf("got %d rows, want 2", len(resp.Data))
	}
	if resp.Data[1]["code"] != "EC" {
		t.Errorf("row 2 code = %q, want EC", resp.Data[1]["code"])
	}
	if strings.Join(resp.Columns, ",") != "name,code" {
		t.Errorf("columns = %v, want [name code]", resp.Columns)
	}
	if resp.Message == "" {
		t.Error("message is empty")
	}
}

func TestParse_InputErrors(t *testing.T) {
	s := newTestServer(t, memstore.New())

	tests := []struct {
		name     string
		file     []byte
		wantCode string
	}{
		{"no file", nil, "FILE005"},
		{"not a spreadsheet", []byte("definitely not xlsx"), "FILE002"},
		{"header only", xlsx(t, [][]string{{"name", "code"}}), "FILE005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, uploadRequest(t, "/import/parse/department", tt.file))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if resp := decode[ErrorResponse](t, rec); resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestBulk_DepartmentsThenReimport(t *testing.T) {
	store := memstore.New()
	s := newTestServer(t, store)
	body := `{"data":[{"name":"Computer Science","code":"CS"},{"name":"Electronics","code":"EC"}]}`

	rec := postJSON(t, s, "/import/bulk/department", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if resp := decode[BulkResponse](t, rec); resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}

	rec = postJSON(t, s, "/import/bulk/department", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("second status = %d, want 201", rec.Code)
	}
	if resp := decode[BulkResponse](t, rec); resp.Count != 0 {
		t.Errorf("second count = %d, want 0", resp.Count)
	}
	if n := len(store.Departments()); n != 2 {
		t.Errorf("departments = %d, want 2", n)
	}
}

func TestBulk_CourseWithNumericFees(t *testing.T) {
	store := memstore.New()
	store.SeedDepartment("CS", "Computer Science")
	s := newTestServer(t, store)

	rec := postJSON(t, s, "/import/bulk/course",
		`{"data":[{"name":"B.Tech CSE","code":"BTCS","departmentCode":"CS","fees":50000}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if resp := decode[BulkResponse](t, rec); resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
	if got := store.Courses(); len(got) != 1 {
		t.Errorf("courses = %+v", got)
	}
}

func TestBulk_DataAsEncodedString(t *testing.T) {
	s := newTestServer(t, memstore.New())
	inner := `[{"name":"Computer Science","code":"CS"}]`
	body := fmt.Sprintf(`{"data":%q}`, inner)

	rec := postJSON(t, s, "/import/bulk/department", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if resp := decode[BulkResponse](t, rec); resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
}

func TestBulk_InputErrors(t *testing.T) {
	s := newTestServer(t, memstore.New())

	tests := []struct {
		name string
		body string
	}{
		{"empty data", `{"data":[]}`},
		{"missing data", `{}`},
		{"not json", `{"data":`},
		{"undecodable string", `{"data":"[{broken"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, s, "/import/bulk/department", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestBulk_StructuralFailureIs500(t *testing.T) {
	store := memstore.New()
	s := newTestServer(t, store)

	rec := postJSON(t, s, "/import/bulk/department", `{"data":[{"name":"Computer Science","code":""}]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Message == "" || resp.Error == "" {
		t.Errorf("response = %+v, want message and error", resp)
	}
	if !strings.Contains(resp.Error, "IMP005") {
		t.Errorf("error = %q, want mapped IMP005 message", resp.Error)
	}
	if n := len(store.Departments()); n != 0 {
		t.Errorf("departments = %d, want 0", n)
	}
}

func TestHistory(t *testing.T) {
	s := newTestServer(t, memstore.New())
	postJSON(t, s, "/import/bulk/department", `{"data":[{"name":"Computer Science","code":"CS"}]}`)

	req := httptest.NewRequest(http.MethodGet, "/import/history/department?limit=5", nil)
	req.Header.Set("User-Agent", "history-test")
	rec := do(t, s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	runs := decode[[]core.ImportRun](t, rec)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].IPAddress != "192.0.2.10" {
		t.Errorf("IPAddress = %q, want 192.0.2.10", runs[0].IPAddress)
	}
	if runs[0].Status != core.RunSucceeded || runs[0].Imported != 1 {
		t.Errorf("run = %+v", runs[0])
	}

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/import/history/course", nil))
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty history body = %s, want []", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, memstore.New())
	postJSON(t, s, "/import/bulk/department", `{"data":[{"name":"Computer Science","code":"CS"}]}`)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `import_batches_total{category="department",status="succeeded"} 1`) {
		t.Errorf("metrics output missing batch counter:\n%s", rec.Body.String())
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", core.ErrInvalidCategory), http.StatusBadRequest},
		{fmt.Errorf("%w: x", core.ErrEmptyInput), http.StatusBadRequest},
		{fmt.Errorf("%w: x", core.ErrMalformedInput), http.StatusBadRequest},
		{fmt.Errorf("%w: x", core.ErrTooManyRows), http.StatusBadRequest},
		{core.ErrTooManyImports, http.StatusServiceUnavailable},
		{&core.ProfileCreationError{Row: 1, Key: "E1", Err: errors.New("boom")}, http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRespondError_TooManyImportsSetsRetryAfter(t *testing.T) {
	s := newTestServer(t, memstore.New())
	rec := httptest.NewRecorder()
	s.respondError(rec, httptest.NewRequest(http.MethodPost, "/import/bulk/department", nil), core.ErrTooManyImports)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	defer rl.stop()

	for i, want := range []bool{true, true, false} {
		if got := rl.allow("198.51.100.1"); got != want {
			t.Errorf("allow #%d = %v, want %v", i+1, got, want)
		}
	}
	if !rl.allow("198.51.100.2") {
		t.Error("allow(other ip) = false, want true")
	}
}

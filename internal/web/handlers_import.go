package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/institute/internal/core"
	"github.com/JonMunkholm/institute/internal/logging"
)

// maxBulkBodySize caps the JSON body of a bulk import. Rows arrive as JSON
// objects, so the body is larger than the spreadsheet they came from.
const maxBulkBodySize = 64 << 20

// ParseResponse is returned by the parse endpoint.
type ParseResponse struct {
	Message string        `json:"message"`
	Data    []core.RawRow `json:"data"`
	Columns []string      `json:"columns"`
}

// BulkResponse is returned by the bulk endpoint. Count may be lower than the
// rows submitted; callers compare the two to detect dropped or skipped rows.
type BulkResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
	BatchID string `json:"batchId"`
}

// categoryParam validates the {category} path parameter.
func categoryParam(r *http.Request) (core.Category, error) {
	return core.ParseCategory(chi.URLParam(r, "category"))
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{
		"status":  "ok",
		"imports": s.service.LimiterStatus(),
	}
	if err := s.service.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Warn("health check failed", "error", err)
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
	}
	writeJSON(w, status, body)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Categories())
}

// handleImportStatus reports import slot usage.
func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.LimiterStatus())
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	tmpl, err := s.service.Template(r.Context(), category)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, tmpl.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(tmpl.Data)))
	if _, err := w.Write(tmpl.Data); err != nil {
		logging.FromContext(r.Context()).Warn("template write failed", "error", err)
	}
}

// handleParse reads the multipart "file" field and returns its rows.
// Nothing is persisted.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, fmt.Errorf("%w: file exceeds %d bytes", core.ErrMalformedInput, maxSize))
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: no file provided", core.ErrEmptyInput))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: no file provided", core.ErrEmptyInput))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read upload: %w", err))
		return
	}

	parsed, err := s.service.Parse(r.Context(), category, data)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ParseResponse{
		Message: fmt.Sprintf("Parsed %d rows", len(parsed.Rows)),
		Data:    parsed.Rows,
		Columns: parsed.Columns,
	})
}

// handleBulk persists {"data": [...]} for a category.
func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBulkBodySize))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrMalformedInput, err))
		return
	}

	payload, err := core.DecodeBulkPayload(body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	log := logging.ForImport(r.Context(), string(category))
	for _, cell := range payload.RawCells {
		log.Warn("raw cell passed through", "row", cell.Row, "column", cell.Column)
	}

	r = withCaller(r)
	res, err := s.service.BulkImport(r.Context(), category, payload.Rows)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, BulkResponse{
		Message: fmt.Sprintf("Imported %d of %d rows", res.Imported, res.Submitted),
		Count:   res.Imported,
		BatchID: res.BatchID,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	runs, err := s.service.History(r.Context(), category, parseIntParam(r, "limit", 0))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if runs == nil {
		runs = []core.ImportRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

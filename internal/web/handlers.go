package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/capops/quotanorm/internal/export"
	"github.com/capops/quotanorm/internal/logging"
)

// handleIndex serves the paste-and-transform page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleHealthz reports liveness and the number of stored runs.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"runs":   s.service.RunCount(),
	})
}

// readInput extracts the export text from the request. Accepted forms, in
// order: a multipart upload under "file", a form field "text", or the raw
// request body. The returned source labels the origin for run listings.
func (s *Server) readInput(r *http.Request) (text, source string, err error) {
	maxBytes := int64(s.cfg.Transform.MaxInputSize)
	// Allow for multipart framing overhead around the payload itself.
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes+64*1024)

	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return "", "", fmt.Errorf("parsing multipart form: %w", err)
		}
		if file, header, ferr := r.FormFile("file"); ferr == nil {
			defer file.Close()
			data, rerr := io.ReadAll(file)
			if rerr != nil {
				return "", "", fmt.Errorf("reading upload: %w", rerr)
			}
			return string(data), header.Filename, nil
		}
		if v := r.FormValue("text"); v != "" {
			return v, "paste", nil
		}
		return "", "", errors.New("no file provided")
	}

	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return "", "", fmt.Errorf("parsing form: %w", err)
		}
		return r.FormValue("text"), "paste", nil
	}

	data, rerr := io.ReadAll(r.Body)
	if rerr != nil {
		return "", "", fmt.Errorf("reading body: %w", rerr)
	}
	return string(data), "body", nil
}

// handleTransform runs the pipeline on the submitted input and stores the
// result as a new run.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	text, source, err := s.readInput(r)
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusBadRequest)
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Debug("transform requested", "source", source, "inputBytes", len(text))

	run, err := s.service.Transform(r.Context(), source, text)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, run)
}

// handleListRuns lists stored run summaries, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"runs": s.service.Runs(),
	})
}

// handleGetRun returns one stored run with its full result.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.service.GetRun(chi.URLParam(r, "runID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, run)
}

// handleDeleteRun removes a stored run.
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteRun(chi.URLParam(r, "runID")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportRun streams a stored run as CSV or TSV. Query parameters:
// format=csv|tsv (default csv), rdquota=1 to prepend the tracker identifier
// column.
func (s *Server) handleExportRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	run, err := s.service.GetRun(runID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	includeRDQuota := r.URL.Query().Get("rdquota") == "1"
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "quotanorm-"+runID+".csv"))
		err = export.WriteCSV(w, run.Result, includeRDQuota)
	case "tsv":
		w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "quotanorm-"+runID+".tsv"))
		err = export.WriteTSV(w, run.Result, includeRDQuota)
	default:
		writeError(w, http.StatusBadRequest, "unsupported format: "+format)
		return
	}

	if err != nil {
		logging.FromContext(r.Context()).Error("export write failed", "runId", runID, "error", err)
	}
}

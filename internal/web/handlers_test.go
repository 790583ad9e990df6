package web

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/capops/quotanorm/internal/config"
	"github.com/capops/quotanorm/internal/core"
)

const rawInput = "ID\tUTC Ticket\tDeployment Constraints\tEvent ID\tReason\tSubscription ID\tSKU\tRegion\n" +
	"123\tAZ Enablement/Whitelisting\t\t-1\tVerification Successful\tsub-1\tStandard_D2\tBrazil South (SB)"

func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Transform.MaxInputSize = 1 << 20
	cfg.Transform.MaxRuns = 10
	cfg.Rate.Enabled = false

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, core.NewService(log, cfg.Transform.MaxInputSize, cfg.Transform.MaxRuns))
}

func doRequest(s *Server, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func transformForm(t *testing.T, s *Server, text string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"text": {text}}
	return doRequest(s, http.MethodPost, "/api/transform",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func TestHealthz(t *testing.T) {
	s := testServer(t)

	rec := doRequest(s, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestTransform_FormText(t *testing.T) {
	s := testServer(t)

	rec := transformForm(t, s, rawInput)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}

	var run core.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatal(err)
	}
	if run.ID == "" {
		t.Error("run ID missing")
	}
	if run.Source != "paste" {
		t.Errorf("source = %q, want paste", run.Source)
	}
	if len(run.Result.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(run.Result.Rows))
	}
	if got := run.Result.Rows[0].RequestType; got != "Zonal Enablement" {
		t.Errorf("request type = %q", got)
	}
}

func TestTransform_MultipartFile(t *testing.T) {
	s := testServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "export.tsv")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(rawInput))
	mw.Close()

	rec := doRequest(s, http.MethodPost, "/api/transform", mw.FormDataContentType(), &buf)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var run core.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatal(err)
	}
	if run.Source != "export.tsv" {
		t.Errorf("source = %q, want file name", run.Source)
	}
}

func TestTransform_RawBody(t *testing.T) {
	s := testServer(t)

	rec := doRequest(s, http.MethodPost, "/api/transform", "text/plain", strings.NewReader(rawInput))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
}

func TestTransform_ErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "empty input",
			input:      "",
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "FILE001",
		},
		{
			name:       "header only",
			input:      "ID\tUTC Ticket\tReason",
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "FILE002",
		},
		{
			name:       "missing column",
			input:      "ID\tUTC Ticket\tReason\na\tb\tc",
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VAL001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t)
			rec := transformForm(t, s, tt.input)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
			if resp.Message == "" || resp.Action == "" {
				t.Errorf("message/action should be populated: %+v", resp)
			}
		})
	}
}

func TestRunLifecycle(t *testing.T) {
	s := testServer(t)

	rec := transformForm(t, s, rawInput)
	if rec.Code != http.StatusCreated {
		t.Fatalf("transform status = %d", rec.Code)
	}
	var run core.Run
	json.Unmarshal(rec.Body.Bytes(), &run)

	// Listing includes the run.
	rec = doRequest(s, http.MethodGet, "/api/runs", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listing struct {
		Runs []core.RunSummary `json:"runs"`
	}
	json.Unmarshal(rec.Body.Bytes(), &listing)
	if len(listing.Runs) != 1 || listing.Runs[0].ID != run.ID {
		t.Errorf("listing = %+v", listing)
	}

	// Fetch by ID.
	rec = doRequest(s, http.MethodGet, "/api/runs/"+run.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	// Delete, then the run is gone.
	rec = doRequest(s, http.MethodDelete, "/api/runs/"+run.ID, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = doRequest(s, http.MethodGet, "/api/runs/"+run.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	s := testServer(t)

	rec := doRequest(s, http.MethodGet, "/api/runs/unknown", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != "RUN001" {
		t.Errorf("code = %q, want RUN001", resp.Code)
	}
}

func TestExportRun(t *testing.T) {
	s := testServer(t)

	rec := transformForm(t, s, rawInput)
	var run core.Run
	json.Unmarshal(rec.Body.Bytes(), &run)

	t.Run("csv", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/runs/"+run.ID+"/export?format=csv", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("content type = %q", ct)
		}
		if !strings.HasPrefix(rec.Body.String(), "Subscription ID,Request Type") {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("tsv with rdquota", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/runs/"+run.ID+"/export?format=tsv&rdquota=1", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.HasPrefix(rec.Body.String(), "RDQuota\tSubscription ID") {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/runs/"+run.ID+"/export?format=xlsx", "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestSecurityHeaders(t *testing.T) {
	s := testServer(t)

	rec := doRequest(s, http.MethodGet, "/healthz", "", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("1.2.3.4") {
		t.Error("third request should be limited")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("other IPs are limited independently")
	}
}

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planar/pkg/dcel"
	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/httputil"
	"github.com/matzehuels/planar/pkg/observability"
	"github.com/matzehuels/planar/pkg/pipeline"
)

const crossScene = `{
  "name": "cross",
  "bounds": {"xmin": -9.7, "ymin": -10.3, "xmax": 10.1, "ymax": 9.9},
  "lines": [
    {"slope": 1, "intercept": 0.5},
    {"slope": -1, "intercept": 0.25}
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(Config{Logger: logger})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorBody {
	t.Helper()
	var body httputil.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestArrangementLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/arrangements?validate=true", crossScene)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID       string     `json:"id"`
		Name     string     `json:"name"`
		Stats    dcel.Stats `json:"stats"`
		Document any        `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Name != "cross" || created.Stats.Lines != 2 {
		t.Errorf("created = %+v", created)
	}
	if created.Document != nil {
		t.Error("create response includes the document")
	}
	if loc := rec.Header().Get("Location"); loc != "/v1/arrangements/"+created.ID {
		t.Errorf("Location = %q", loc)
	}

	rec = do(t, s, http.MethodGet, "/v1/arrangements", "")
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0]["id"] != created.ID {
		t.Errorf("list = %v", list)
	}

	path := "/v1/arrangements/" + created.ID
	rec = do(t, s, http.MethodGet, path, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"document"`) {
		t.Errorf("get status = %d, body %.80s", rec.Code, rec.Body.String())
	}

	formats := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{pipeline.FormatDOT, "text/vnd.graphviz; charset=utf-8", "graph G {"},
		{pipeline.FormatSVG, "image/svg+xml", "<svg"},
		{pipeline.FormatJSON, "application/json", "{"},
	}
	for _, f := range formats {
		rec = do(t, s, http.MethodGet, path+"?format="+f.format, "")
		if rec.Code != http.StatusOK {
			t.Errorf("format %s: status = %d", f.format, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); ct != f.contentType {
			t.Errorf("format %s: Content-Type = %q", f.format, ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte(f.prefix)) {
			t.Errorf("format %s: body starts with %.20q", f.format, rec.Body.String())
		}
	}

	rec = do(t, s, http.MethodGet, path+"/dot", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "graph G {") {
		t.Errorf("dot route: status = %d, body %.20q", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, path+"?format=png", "")
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Code != errors.ErrCodeInvalidFormat {
		t.Errorf("format png: status = %d, body %s", rec.Code, rec.Body.String())
	}

	if rec = do(t, s, http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec = do(t, s, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
	if rec = do(t, s, http.MethodDelete, path, ""); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", rec.Code)
	}
}

func TestCreateArrangementErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed", "", `{"lines": [`, http.StatusBadRequest, errors.ErrCodeInvalidScene},
		{"unknown field", "", `{"colour": "red", "lines": [{"slope": 1}]}`, http.StatusBadRequest, errors.ErrCodeInvalidScene},
		{"empty body", "", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad flag", "?validate=maybe", crossScene, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{
			name:   "through corner",
			body:   `{"bounds": {"xmin": -1, "ymin": -1, "xmax": 1, "ymax": 1}, "lines": [{"slope": 1}]}`,
			status: http.StatusUnprocessableEntity,
			code:   errors.ErrCodeDegenerate,
		},
		{
			name:   "segments only",
			body:   `{"segments": [{"id": 1, "a": {"x": 0, "y": 0}, "b": {"x": 1, "y": 1}}]}`,
			status: http.StatusBadRequest,
			code:   errors.ErrCodeInvalidScene,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t), http.MethodPost, "/v1/arrangements"+tt.query, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if got := decodeError(t, rec).Code; got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestArrangementBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"bad id", http.MethodGet, "/v1/arrangements/not-a-uuid", http.StatusBadRequest},
		{"bad delete id", http.MethodDelete, "/v1/arrangements/42", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/v1/arrangements/0b5e8f3c-5a7e-4c39-9d1a-2f7f4f0a6b11", http.StatusNotFound},
		{"bad limit", http.MethodGet, "/v1/arrangements?limit=0", http.StatusBadRequest},
		{"limit too large", http.MethodGet, "/v1/arrangements?limit=100000", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/v2/arrangements", http.StatusNotFound},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, s, tt.method, tt.path, ""); rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestIntersections(t *testing.T) {
	body := `{"segments": [
		{"id": 1, "a": {"x": 0, "y": 0}, "b": {"x": 2, "y": 2}},
		{"id": 2, "a": {"x": 0, "y": 2}, "b": {"x": 2, "y": 0}}
	]}`
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/intersections", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res pipeline.IntersectionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Segments != 2 || len(res.Intersections) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if got := res.Intersections[0].Segments(); len(got) != 2 {
		t.Errorf("Segments() = %v", got)
	}
}

func TestMetrics(t *testing.T) {
	counters := observability.NewCounters()
	observability.SetHTTPHooks(counters)
	t.Cleanup(observability.Reset)

	s := New(Config{Logger: log.NewWithOptions(io.Discard, log.Options{}), Counters: counters})
	do(t, s, http.MethodGet, "/healthz", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	var snap map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap[observability.MetricRequests] < 1 {
		t.Errorf("%s = %d, want >= 1", observability.MetricRequests, snap[observability.MetricRequests])
	}
	if snap[observability.MetricStatusPrefix+"200"] < 1 {
		t.Errorf("status counter missing: %v", snap)
	}
}

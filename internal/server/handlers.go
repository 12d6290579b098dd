package server

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/httputil"
	"github.com/matzehuels/planar/pkg/pipeline"
	"github.com/matzehuels/planar/pkg/scene"
	"github.com/matzehuels/planar/pkg/store"
)

// arrangementResponse is the body of a successful build.
type arrangementResponse struct {
	*store.Record
	CacheHit   bool  `json:"cache_hit"`
	DurationMS int64 `json:"duration_ms"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON:        "application/json",
	pipeline.FormatDOT:         "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:         "image/svg+xml",
	pipeline.FormatGraphvizSVG: "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	snap := map[string]int64{}
	if s.cfg.Counters != nil {
		snap = s.cfg.Counters.Snapshot()
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}

func (s *Server) readScene(w http.ResponseWriter, r *http.Request) (*scene.Scene, error) {
	body, err := httputil.ReadBody(w, r, s.cfg.BodyLimit)
	if err != nil {
		return nil, err
	}
	return scene.ParseJSON(body)
}

func (s *Server) createArrangement(w http.ResponseWriter, r *http.Request) error {
	opts, err := buildOptions(r)
	if err != nil {
		return err
	}
	sc, err := s.readScene(w, r)
	if err != nil {
		return err
	}
	res, err := s.cfg.Runner.Build(r.Context(), sc, opts)
	if err != nil {
		return err
	}

	rec := store.NewRecord(sc, res.Subdivision)
	if err := s.cfg.Store.Put(r.Context(), rec); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save arrangement")
	}
	w.Header().Set("Location", "/v1/arrangements/"+rec.ID)
	httputil.WriteJSON(w, http.StatusCreated, arrangementResponse{
		Record:     rec.Summary(),
		CacheHit:   res.CacheHit,
		DurationMS: res.Duration.Milliseconds(),
	})
	return nil
}

func (s *Server) listArrangements(w http.ResponseWriter, r *http.Request) error {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxListLimit {
			return errors.New(errors.ErrCodeInvalidInput, "limit must be between 1 and %d", MaxListLimit)
		}
		limit = n
	}
	recs, err := s.cfg.Store.List(r.Context(), limit)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "list arrangements")
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, recs)
	return nil
}

func (s *Server) getArrangement(w http.ResponseWriter, r *http.Request) error {
	rec, err := s.record(r)
	if err != nil {
		return err
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		httputil.WriteJSON(w, http.StatusOK, rec)
		return nil
	}
	return s.render(w, r, rec, format)
}

func (s *Server) getArrangementDOT(w http.ResponseWriter, r *http.Request) error {
	rec, err := s.record(r)
	if err != nil {
		return err
	}
	return s.render(w, r, rec, pipeline.FormatDOT)
}

// render writes a stored arrangement in the given format.
func (s *Server) render(w http.ResponseWriter, r *http.Request, rec *store.Record, format string) error {
	if err := errors.ValidateFormat(format, pipeline.Formats...); err != nil {
		return err
	}
	if rec.Document == nil {
		return errors.New(errors.ErrCodeStore, "arrangement %s has no document", rec.ID)
	}

	sub, err := rec.Document.Build()
	if err != nil {
		return pipeline.Classify(err)
	}
	res := &pipeline.Result{
		Subdivision: sub,
		SceneHash:   rec.SceneHash,
		Stats:       rec.Stats,
		Bounds:      sub.Bounds(),
	}
	data, err := s.cfg.Runner.Render(r.Context(), res, format)
	if err != nil {
		return err
	}
	httputil.WriteBytes(w, contentTypes[format], data)
	return nil
}

func (s *Server) deleteArrangement(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	if err := s.cfg.Store.Delete(r.Context(), id); err != nil {
		return storeError(err, id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) findIntersections(w http.ResponseWriter, r *http.Request) error {
	opts, err := buildOptions(r)
	if err != nil {
		return err
	}
	sc, err := s.readScene(w, r)
	if err != nil {
		return err
	}
	res, err := s.cfg.Runner.Intersections(r.Context(), sc, opts)
	if err != nil {
		return err
	}
	httputil.WriteJSON(w, http.StatusOK, res)
	return nil
}

func (s *Server) record(r *http.Request) (*store.Record, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	rec, err := s.cfg.Store.Get(r.Context(), id)
	if err != nil {
		return nil, storeError(err, id)
	}
	return rec, nil
}

func storeError(err error, id string) error {
	if stderrors.Is(err, store.ErrNotFound) {
		return errors.Wrap(errors.ErrCodeNotFound, err, "arrangement %s", id)
	}
	return errors.Wrap(errors.ErrCodeStore, err, "arrangement %s", id)
}

// buildOptions reads the validate and refresh query flags.
func buildOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	for name, dst := range map[string]*bool{"validate": &opts.Validate, "refresh": &opts.Refresh} {
		v := r.URL.Query().Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
		}
		*dst = b
	}
	return opts, nil
}

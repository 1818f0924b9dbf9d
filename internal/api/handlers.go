package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MJE43/fxparams/internal/page"
	"github.com/MJE43/fxparams/internal/params"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	view, err := page.NewView(s.sketch.Host())
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := page.Render(&buf, view); err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleRandomize(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sketch.Randomize(); err != nil {
		s.errorHandler.HandleHostError(w, r, "random_param", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GetVersionInfo())
}

func (s *Server) handleDefinitions(w http.ResponseWriter, r *http.Request) {
	host := s.sketch.Host()
	s.writeJSON(w, http.StatusOK, DefinitionsResponse{
		Hash:       host.Hash(),
		Parameters: params.Records(host.Definitions()),
	})
}

// handleValues serves raw values, or transformed ones with ?transformed=true.
func (s *Server) handleValues(w http.ResponseWriter, r *http.Request) {
	transformed, err := boolQuery(r, "transformed")
	if err != nil {
		s.errorHandler.HandleValidationError(w, r, "transformed", err.Error())
		return
	}
	host := s.sketch.Host()
	values := host.RawParamValues()
	if transformed {
		values = host.ParamValues()
	}
	s.writeJSON(w, http.StatusOK, ValuesResponse{Hash: host.Hash(), Values: values})
}

// handleRandom samples every parameter. With ?emit=true the sample is also
// emitted as a params:update.
func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	emit, err := boolQuery(r, "emit")
	if err != nil {
		s.errorHandler.HandleValidationError(w, r, "emit", err.Error())
		return
	}
	if emit {
		u, err := s.sketch.Randomize()
		if err != nil {
			s.errorHandler.HandleHostError(w, r, "random_param", err)
			return
		}
		s.writeJSON(w, http.StatusOK, RandomResponse{Values: u.Values, Update: &u})
		return
	}

	values, err := s.sketch.Service().SampleRandomParameters()
	if err != nil {
		s.errorHandler.HandleHostError(w, r, "random_param", err)
		return
	}
	s.writeJSON(w, http.StatusOK, RandomResponse{Values: values})
}

func (s *Server) handleParam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	host := s.sketch.Host()
	for _, def := range host.Definitions() {
		if def.ID() != id {
			continue
		}
		raw, _ := host.RawParam(id)
		value, _ := host.Param(id)
		s.writeJSON(w, http.StatusOK, ParamResponse{Parameter: def.Record(), Raw: raw, Value: value})
		return
	}
	s.errorHandler.HandleNotFound(w, r, id)
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	host := s.sketch.Host()
	s.writeJSON(w, http.StatusOK, FeaturesResponse{Hash: host.Hash(), Features: host.FeaturesSnapshot()})
}

func boolQuery(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

package httpapi

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/irispredictor/internal/common"
)

//go:embed index.html
var indexPage []byte

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexPage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, err := s.tokens.Issue(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	f, err := req.features()
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	p, err := s.predictor.Predict(r.Context(), token, f)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{PredictedClass: *p.PredictedClass})
}

func (s *Server) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())

	limit, ok := intQuery(w, r, "limit", common.DefaultListLimit)
	if !ok {
		return
	}
	offset, ok := intQuery(w, r, "offset", common.DefaultListOffset)
	if !ok {
		return
	}

	items, err := s.predictor.List(r.Context(), token, limit, offset)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecords(items))
}

// intQuery reads an integer query parameter, writing a 422 when it does not
// parse.
func intQuery(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, name+" must be an integer")
		return 0, false
	}
	return v, true
}

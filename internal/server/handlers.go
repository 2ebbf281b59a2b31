package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/output"
	"github.com/lgbarn/connect4-go/internal/search"
	"github.com/lgbarn/connect4-go/internal/storage"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// PositionRequest is the body of POST /api/position.
type PositionRequest struct {
	Moves string `json:"moves"`
}

// BestMoveRequest is the body of POST /api/bestmove. A zero depth uses the
// configured search depth.
type BestMoveRequest struct {
	Moves string `json:"moves"`
	Depth int    `json:"depth"`
}

// StoreRequest is the body of POST /api/store.
type StoreRequest struct {
	Kind  storage.Kind `json:"kind"`
	Moves string       `json:"moves"`
}

// ErrorResponse is returned with every 4xx and 5xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.version})
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := board.Parse(req.Moves)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output.PositionToJSON(b))
}

func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	var req BestMoveRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := board.Parse(req.Moves)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := search.New(b, s.depth(req.Depth),
		search.WithFeatureThreshold(s.search.FeatureThreshold),
		search.WithContext(r.Context()),
		search.WithLogger(s.log),
	).Search()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output.AnalysisToJSON(b.String(), res))
}

// depth resolves a requested depth against the configured default and cap.
// Negative depths pass through so the search rejects them.
func (s *Server) depth(requested int) int {
	if requested == 0 {
		requested = s.search.Depth
	}
	return min(requested, s.cfg.MaxDepth)
}

func (s *Server) handleStoreSave(w http.ResponseWriter, r *http.Request) {
	var req StoreRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := s.store.Save(r.Context(), req.Kind, req.Moves)
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleStoreList(w http.ResponseWriter, r *http.Request) {
	kind := storage.Game
	if q := r.URL.Query().Get("kind"); q != "" {
		var err error
		if kind, err = storage.ParseKind(q); err != nil {
			writeError(w, err)
			return
		}
	}
	records, err := s.store.List(r.Context(), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []storage.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleStoreGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// decode reads a JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payload: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), ErrorResponse{Error: err.Error()})
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrInvalidNotation),
		errors.Is(err, errors.ErrInvalidMove),
		errors.Is(err, errors.ErrInvalidDepth),
		errors.Is(err, errors.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrGameOver),
		errors.Is(err, errors.ErrNoLegalMoves):
		return http.StatusConflict
	case errors.Is(err, errors.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrSearchAborted):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

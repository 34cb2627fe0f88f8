package simulation

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler handles simulation HTTP requests
type Handler struct {
	service *Service
	history *HistoryRepository
	log     zerolog.Logger
}

// NewHandler creates a new simulation handler. The history repository may
// be nil, in which case runs are not persisted.
func NewHandler(service *Service, history *HistoryRepository, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		history: history,
		log:     log.With().Str("handler", "simulation").Logger(),
	}
}

// HandleSimulate runs a goal simulation and returns the result
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Simulate(req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			h.writeError(w, http.StatusBadRequest, err.Error())
		} else {
			h.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.saveRun(req, result)
	h.writeJSON(w, http.StatusOK, result)
}

// HandleListRuns returns recent persisted runs
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeError(w, http.StatusServiceUnavailable, "run history is not enabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.history.List(limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if records == nil {
		records = []RunRecord{}
	}
	h.writeJSON(w, http.StatusOK, records)
}

// HandleGetRun returns one persisted run by id
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeError(w, http.StatusServiceUnavailable, "run history is not enabled")
		return
	}

	id := chi.URLParam(r, "id")

	record, err := h.history.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "run not found")
		} else {
			h.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.writeJSON(w, http.StatusOK, record)
}

// saveRun persists a completed run. Failures are logged only: history is
// best effort and must not fail the simulation response.
func (h *Handler) saveRun(req Request, result *Result) {
	if h.history == nil {
		return
	}

	requestJSON, err := json.Marshal(req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode run request")
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode run result")
		return
	}

	rec := RunRecord{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().Format(time.RFC3339),
		Years:       req.Years,
		TargetGoal:  req.TargetGoal,
		TrialCount:  h.service.TrialCount(),
		Seed:        req.Seed,
		RequestJSON: string(requestJSON),
		ResultJSON:  string(resultJSON),
	}

	if err := h.history.Save(rec); err != nil {
		h.log.Error().Err(err).Msg("Failed to persist simulation run")
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

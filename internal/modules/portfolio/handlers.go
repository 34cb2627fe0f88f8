package portfolio

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleGetAssetClasses returns the six asset class names used for all
// portfolio analysis
func (h *Handler) HandleGetAssetClasses(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, AssetClassNames())
}

// HandleNewPortfolio returns an empty portfolio with all classes at zero
func (h *Handler) HandleNewPortfolio(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, New())
}

type addRequest struct {
	Portfolio Portfolio `json:"portfolio"`
	Additions Portfolio `json:"additions"`
}

// HandleAdd merges asset amounts into a portfolio and returns the result
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := req.Portfolio.Add(req.Additions)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.Info().
		Float64("added", req.Additions.Total()).
		Float64("total", updated.Total()).
		Msg("Portfolio updated")

	h.writeJSON(w, http.StatusOK, updated)
}

type addWithAllocationRequest struct {
	Amount     float64            `json:"amount"`
	Portfolio  Portfolio          `json:"portfolio"`
	Allocation map[string]float64 `json:"asset_allocation"`
}

// HandleAddWithAllocation distributes an amount across the portfolio
// according to allocation ratios
func (h *Handler) HandleAddWithAllocation(w http.ResponseWriter, r *http.Request) {
	var req addWithAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := req.Portfolio.AddWithAllocation(req.Amount, req.Allocation)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.Info().
		Float64("amount", req.Amount).
		Float64("total", updated.Total()).
		Msg("Portfolio updated with allocation")

	h.writeJSON(w, http.StatusOK, updated)
}

type summaryRequest struct {
	Portfolio Portfolio `json:"portfolio"`
}

// HandleSummary returns summary statistics for a portfolio
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := req.Portfolio.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, req.Portfolio.Summarize())
}

type addAssetClassRequest struct {
	AssetClass string    `json:"asset_class_key"`
	Amount     float64   `json:"amount"`
	Portfolio  Portfolio `json:"portfolio"`
}

// HandleAddAssetClass adds an amount to a single asset class
func (h *Handler) HandleAddAssetClass(w http.ResponseWriter, r *http.Request) {
	var req addAssetClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	class, err := ParseAssetClass(req.AssetClass)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := req.Portfolio.AddAssetClass(class, req.Amount)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
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

package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"equiptrack/internal/stats/repository"
	userhttp "equiptrack/internal/user/delivery/http"
)

// StatsHandler serves equipment aggregate counts
type StatsHandler struct {
	repo  *repository.SQLStatsRepository
	guard *userhttp.AuthGuard
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(repo *repository.SQLStatsRepository, guard *userhttp.AuthGuard) *StatsHandler {
	return &StatsHandler{repo: repo, guard: guard}
}

// Get handles GET /stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	byStatus, err := h.repo.CountByStatus()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	byCategory, err := h.repo.CountByCategory()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"byStatus":   byStatus,
		"byCategory": byCategory,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the stats routes
func (h *StatsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/stats", h.guard.Authenticate(h.Get)).Methods("GET")
}

package bootstrap

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	userhttp "equiptrack/internal/user/delivery/http"
	userdom "equiptrack/internal/user/domain"
)

// DemoHandler exposes the demo data seed to administrators
type DemoHandler struct {
	seeder *Seeder
	guard  *userhttp.AuthGuard
}

// NewDemoHandler creates a new demo handler
func NewDemoHandler(seeder *Seeder, guard *userhttp.AuthGuard) *DemoHandler {
	return &DemoHandler{seeder: seeder, guard: guard}
}

// Seed handles POST /admin/demo/seed
func (h *DemoHandler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.seeder.SeedDemo()
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// RegisterRoutes registers the demo routes
func (h *DemoHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/admin/demo/seed", h.guard.Require(h.Seed, userdom.RoleAdmin)).Methods("POST")
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	equipment "equiptrack/internal/equipment/domain"
	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/transferact"
	"equiptrack/internal/transferact/usecase/command"
	userhttp "equiptrack/internal/user/delivery/http"
	userdom "equiptrack/internal/user/domain"
	"equiptrack/pkg/auth"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DocsHandler serves generated transfer documents
type DocsHandler struct {
	generateHandler *command.GenerateActHandler
	guard           *userhttp.AuthGuard
}

// NewDocsHandler creates a new docs handler
func NewDocsHandler(repo equipment.Repository, renderer transferact.Renderer, movements *movement.Recorder, guard *userhttp.AuthGuard) *DocsHandler {
	return &DocsHandler{
		generateHandler: command.NewGenerateActHandler(repo, renderer, movements),
		guard:           guard,
	}
}

// Transfer handles POST /docs/transfer
func (h *DocsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EquipmentID  uint    `json:"equipmentId"`
		TransferTo   string  `json:"transferTo"`
		TransferDate *string `json:"transferDate"`
		ReturnDate   *string `json:"returnDate"`
		Note         string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	principal, _ := auth.PrincipalFromContext(r.Context())
	result, err := h.generateHandler.Handle(r.Context(), command.GenerateActCommand{
		Actor:        principal.Actor(),
		EquipmentID:  req.EquipmentID,
		TransferTo:   req.TransferTo,
		TransferDate: parseDatePtr(req.TransferDate),
		ReturnDate:   parseDatePtr(req.ReturnDate),
		Note:         req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, equipment.ErrValidation):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

var requestDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range requestDateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RegisterRoutes registers the docs routes
func (h *DocsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/docs/transfer", h.guard.Require(h.Transfer, userdom.RoleAdmin, userdom.RoleEditor)).Methods("POST")
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"equiptrack/internal/equipment/domain"
	"equiptrack/internal/equipment/usecase/command"
	"equiptrack/internal/equipment/usecase/query"
	movement "equiptrack/internal/movement/domain"
	userhttp "equiptrack/internal/user/delivery/http"
	userdom "equiptrack/internal/user/domain"
	"equiptrack/pkg/auth"
)

// EquipmentHandler handles HTTP requests for equipment
type EquipmentHandler struct {
	createHandler *command.CreateEquipmentHandler
	updateHandler *command.UpdateEquipmentHandler
	deleteHandler *command.DeleteEquipmentHandler

	getHandler  *query.GetEquipmentHandler
	listHandler *query.ListEquipmentHandler

	guard *userhttp.AuthGuard
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(repo domain.Repository, mirror command.WarehouseMirror, movements *movement.Recorder, guard *userhttp.AuthGuard) *EquipmentHandler {
	return &EquipmentHandler{
		createHandler: command.NewCreateEquipmentHandler(repo, movements),
		updateHandler: command.NewUpdateEquipmentHandler(repo, mirror, movements),
		deleteHandler: command.NewDeleteEquipmentHandler(repo, movements),
		getHandler:    query.NewGetEquipmentHandler(repo),
		listHandler:   query.NewListEquipmentHandler(repo),
		guard:         guard,
	}
}

// equipmentRequest mirrors the equipment JSON body with dates as strings
type equipmentRequest struct {
	Name            *string  `json:"name"`
	Category        *string  `json:"category"`
	SerialNumber    *string  `json:"serialNumber"`
	InventoryNumber *string  `json:"inventoryNumber"`
	PurchaseDate    *string  `json:"purchaseDate"`
	Cost            *float64 `json:"cost"`
	Location        *string  `json:"location"`
	Responsible     *string  `json:"responsible"`
	Status          *string  `json:"status"`
	Manufacturer    *string  `json:"manufacturer"`
	Model           *string  `json:"model"`
	Condition       *string  `json:"condition"`
	TransferTo      *string  `json:"transferTo"`
	TransferDate    *string  `json:"transferDate"`
	ReturnDate      *string  `json:"returnDate"`
	Note            *string  `json:"note"`
}

// List handles GET /equipment
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit, _ := strconv.Atoi(params.Get("limit"))
	offset, _ := strconv.Atoi(params.Get("offset"))

	filter := domain.ListFilter{
		Query:       params.Get("q"),
		Status:      params.Get("status"),
		Category:    params.Get("category"),
		Location:    params.Get("location"),
		Responsible: params.Get("responsible"),
		SortBy:      params.Get("sort_by"),
		Order:       params.Get("order"),
		Limit:       limit,
		Offset:      offset,
	}

	result, err := h.listHandler.Handle(query.ListEquipmentQuery{Filter: filter})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Get handles GET /equipment/{id}
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.getHandler.Handle(query.GetEquipmentQuery{ID: id})
	if err != nil {
		respondEquipmentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// Create handles POST /equipment
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := domain.Equipment{}
	applyRequest(&item, req)

	created, err := h.createHandler.Handle(r.Context(), command.CreateEquipmentCommand{
		Actor: actor(r),
		Item:  item,
	})
	if err != nil {
		respondEquipmentError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /equipment/{id}
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.updateHandler.Handle(r.Context(), command.UpdateEquipmentCommand{
		Actor: actor(r),
		ID:    id,
		Patch: toPatch(req),
	})
	if err != nil {
		respondEquipmentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /equipment/{id}
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteEquipmentCommand{Actor: actor(r), ID: id}); err != nil {
		respondEquipmentError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// applyRequest copies all provided fields onto a blank equipment record
func applyRequest(item *domain.Equipment, req equipmentRequest) {
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.SerialNumber != nil && *req.SerialNumber != "" {
		item.SerialNumber = req.SerialNumber
	}
	if req.InventoryNumber != nil && *req.InventoryNumber != "" {
		item.InventoryNumber = req.InventoryNumber
	}
	item.PurchaseDate = parseDatePtr(req.PurchaseDate)
	item.Cost = req.Cost
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.Responsible != nil {
		item.Responsible = *req.Responsible
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Manufacturer != nil {
		item.Manufacturer = *req.Manufacturer
	}
	if req.Model != nil {
		item.Model = *req.Model
	}
	if req.Condition != nil {
		item.Condition = *req.Condition
	}
	if req.TransferTo != nil {
		item.TransferTo = *req.TransferTo
	}
	item.TransferDate = parseDatePtr(req.TransferDate)
	item.ReturnDate = parseDatePtr(req.ReturnDate)
	if req.Note != nil {
		item.Note = *req.Note
	}
}

// toPatch converts the partial request to a domain patch, keeping absent
// fields nil so they stay untouched
func toPatch(req equipmentRequest) domain.Patch {
	p := domain.Patch{
		Name:            req.Name,
		Category:        req.Category,
		SerialNumber:    req.SerialNumber,
		InventoryNumber: req.InventoryNumber,
		Cost:            req.Cost,
		Location:        req.Location,
		Responsible:     req.Responsible,
		Status:          req.Status,
		Manufacturer:    req.Manufacturer,
		Model:           req.Model,
		Condition:       req.Condition,
		TransferTo:      req.TransferTo,
		Note:            req.Note,
	}
	if req.PurchaseDate != nil {
		p.PurchaseDate = parseDatePtr(req.PurchaseDate)
	}
	if req.TransferDate != nil {
		p.TransferDate = parseDatePtr(req.TransferDate)
	}
	if req.ReturnDate != nil {
		p.ReturnDate = parseDatePtr(req.ReturnDate)
	}
	return p
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

func actor(r *http.Request) string {
	principal, _ := auth.PrincipalFromContext(r.Context())
	return principal.Actor()
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid equipment ID")
		return 0, false
	}
	return uint(id), true
}

func respondEquipmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all equipment routes
func (h *EquipmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/equipment", h.guard.Authenticate(h.List)).Methods("GET")
	router.HandleFunc("/equipment/{id}", h.guard.Authenticate(h.Get)).Methods("GET")
	router.HandleFunc("/equipment", h.guard.Require(h.Create, userdom.RoleAdmin, userdom.RoleEditor)).Methods("POST")
	router.HandleFunc("/equipment/{id}", h.guard.Require(h.Update, userdom.RoleAdmin, userdom.RoleEditor)).Methods("PUT")
	router.HandleFunc("/equipment/{id}", h.guard.Require(h.Delete, userdom.RoleAdmin)).Methods("DELETE")
}

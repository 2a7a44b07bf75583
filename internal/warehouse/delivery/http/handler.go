package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	equipment "equiptrack/internal/equipment/domain"
	movement "equiptrack/internal/movement/domain"
	movementquery "equiptrack/internal/movement/usecase/query"
	"equiptrack/internal/spreadsheet"
	userhttp "equiptrack/internal/user/delivery/http"
	userdom "equiptrack/internal/user/domain"
	"equiptrack/internal/warehouse/domain"
	"equiptrack/internal/warehouse/usecase/command"
	"equiptrack/internal/warehouse/usecase/query"
	"equiptrack/pkg/auth"
)

// WarehouseHandler handles HTTP requests for bulk stock
type WarehouseHandler struct {
	createHandler   *command.CreateItemHandler
	updateHandler   *command.UpdateItemHandler
	deleteHandler   *command.DeleteItemHandler
	transferHandler *command.TransferHandler
	importHandler   *command.ImportItemsHandler

	listHandler      *query.ListItemsHandler
	movementsHandler *movementquery.ListMovementsHandler

	guard     *userhttp.AuthGuard
	uploadDir string
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(
	repo domain.Repository,
	movements *movement.Recorder,
	movementRepo movement.Repository,
	guard *userhttp.AuthGuard,
	uploadDir string,
) *WarehouseHandler {
	return &WarehouseHandler{
		createHandler:    command.NewCreateItemHandler(repo, movements),
		updateHandler:    command.NewUpdateItemHandler(repo, movements),
		deleteHandler:    command.NewDeleteItemHandler(repo, movements),
		transferHandler:  command.NewTransferHandler(repo),
		importHandler:    command.NewImportItemsHandler(repo, movements),
		listHandler:      query.NewListItemsHandler(repo),
		movementsHandler: movementquery.NewListMovementsHandler(movementRepo),
		guard:            guard,
		uploadDir:        uploadDir,
	}
}

// itemRequest mirrors the warehouse JSON body with the date as a string
type itemRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Model        *string  `json:"model"`
	Manufacturer *string  `json:"manufacturer"`
	SerialNumber *string  `json:"serialNumber"`
	Quantity     *int     `json:"quantity"`
	Unit         *string  `json:"unit"`
	UnitCost     *float64 `json:"unitCost"`
	DateReceived *string  `json:"dateReceived"`
	Supplier     *string  `json:"supplier"`
	Status       *string  `json:"status"`
	Location     *string  `json:"location"`
	Note         *string  `json:"note"`
}

// List handles GET /warehouse
func (h *WarehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	items, err := h.listHandler.Handle(query.ListItemsQuery{Filter: domain.ListFilter{
		Query:  params.Get("q"),
		Status: params.Get("status"),
		SortBy: params.Get("sort_by"),
		Order:  params.Get("order"),
	}})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Create handles POST /warehouse
func (h *WarehouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := domain.WarehouseItem{}
	applyItemRequest(&item, req)

	result, err := h.createHandler.Handle(r.Context(), command.CreateItemCommand{Actor: actor(r), Item: item})
	if err != nil {
		respondWarehouseError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"item": result.Item, "merged": result.Merged})
}

// Update handles PUT /warehouse/{id}
func (h *WarehouseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.updateHandler.Handle(r.Context(), command.UpdateItemCommand{
		Actor: actor(r),
		ID:    id,
		Patch: toItemPatch(req),
	})
	if err != nil {
		respondWarehouseError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /warehouse/{id}
func (h *WarehouseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteItemCommand{Actor: actor(r), ID: id}); err != nil {
		respondWarehouseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Transfer handles POST /warehouse/{id}/transfer
func (h *WarehouseHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Qty             float64  `json:"qty"`
		InventoryNumber string   `json:"inventoryNumber"`
		Cost            *float64 `json:"cost"`
		Location        string   `json:"location"`
		Responsible     string   `json:"responsible"`
		PurchaseDate    *string  `json:"purchaseDate"`
		Note            string   `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.transferHandler.Handle(r.Context(), command.TransferCommand{
		Actor:           actor(r),
		SourceID:        id,
		Qty:             req.Qty,
		InventoryNumber: req.InventoryNumber,
		Cost:            req.Cost,
		Location:        req.Location,
		Responsible:     req.Responsible,
		PurchaseDate:    parseDatePtr(req.PurchaseDate),
		Note:            req.Note,
	})
	if err != nil {
		respondWarehouseError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"createdCount": len(result.Created),
		"created":      result.Created,
		"remaining":    result.Remaining,
	})
}

// Import handles POST /warehouse/import (multipart xlsx upload)
func (h *WarehouseHandler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer file.Close()

	path, err := h.saveUpload(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer os.Remove(path)

	result, err := h.importHandler.Handle(r.Context(), command.ImportItemsCommand{
		Actor:  actor(r),
		Reader: spreadsheet.NewExcelReader(path),
	})
	if err != nil {
		respondWarehouseError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Movements handles GET /warehouse/movements
func (h *WarehouseHandler) Movements(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit, _ := strconv.Atoi(params.Get("limit"))

	filter := movement.Filter{
		User:     params.Get("user"),
		Action:   params.Get("action"),
		ItemName: params.Get("itemName"),
		Limit:    limit,
	}
	if from := parseQueryDate(params.Get("from")); from != nil {
		filter.From = from
	}
	if to := parseQueryDate(params.Get("to")); to != nil {
		filter.To = to
	}

	items, err := h.movementsHandler.Handle(movementquery.ListMovementsQuery{Filter: filter})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *WarehouseHandler) saveUpload(src io.Reader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload dir: %w", err)
	}
	path := filepath.Join(h.uploadDir, uuid.NewString()+".xlsx")
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return path, nil
}

func applyItemRequest(item *domain.WarehouseItem, req itemRequest) {
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Model != nil {
		item.Model = *req.Model
	}
	if req.Manufacturer != nil {
		item.Manufacturer = *req.Manufacturer
	}
	if req.SerialNumber != nil {
		item.SerialNumber = *req.SerialNumber
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	item.UnitCost = req.UnitCost
	item.DateReceived = parseDatePtr(req.DateReceived)
	if req.Supplier != nil {
		item.Supplier = *req.Supplier
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.Note != nil {
		item.Note = *req.Note
	}
}

func toItemPatch(req itemRequest) command.ItemPatch {
	p := command.ItemPatch{
		Name:         req.Name,
		Category:     req.Category,
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
		SerialNumber: req.SerialNumber,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitCost:     req.UnitCost,
		Supplier:     req.Supplier,
		Status:       req.Status,
		Location:     req.Location,
		Note:         req.Note,
	}
	if req.DateReceived != nil {
		p.DateReceived = parseDatePtr(req.DateReceived)
	}
	return p
}

var requestDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	return parseQueryDate(*s)
}

func parseQueryDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range requestDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
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
		respondError(w, http.StatusBadRequest, "Invalid warehouse item ID")
		return 0, false
	}
	return uint(id), true
}

func respondWarehouseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, equipment.ErrConflict):
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

// RegisterRoutes registers all warehouse routes
func (h *WarehouseHandler) RegisterRoutes(router *mux.Router) {
	editors := []string{userdom.RoleAdmin, userdom.RoleEditor}

	router.HandleFunc("/warehouse", h.guard.Authenticate(h.List)).Methods("GET")
	router.HandleFunc("/warehouse/movements", h.guard.Require(h.Movements, editors...)).Methods("GET")
	router.HandleFunc("/warehouse", h.guard.Require(h.Create, editors...)).Methods("POST")
	router.HandleFunc("/warehouse/import", h.guard.Require(h.Import, editors...)).Methods("POST")
	router.HandleFunc("/warehouse/{id}", h.guard.Require(h.Update, editors...)).Methods("PUT")
	router.HandleFunc("/warehouse/{id}", h.guard.Require(h.Delete, userdom.RoleAdmin)).Methods("DELETE")
	router.HandleFunc("/warehouse/{id}/transfer", h.guard.Require(h.Transfer, editors...)).Methods("POST")
}

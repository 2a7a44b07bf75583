package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	equipment "equiptrack/internal/equipment/domain"
	"equiptrack/internal/importexport/usecase/command"
	"equiptrack/internal/importexport/usecase/query"
	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/spreadsheet"
	userhttp "equiptrack/internal/user/delivery/http"
	userdom "equiptrack/internal/user/domain"
	"equiptrack/pkg/auth"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportExportHandler handles spreadsheet import and export of equipment
type ImportExportHandler struct {
	importHandler *command.ImportEquipmentHandler
	exportHandler *query.ExportEquipmentHandler
	reportHandler *query.ReportEquipmentHandler

	guard     *userhttp.AuthGuard
	uploadDir string
}

// NewImportExportHandler creates a new import-export handler
func NewImportExportHandler(
	repo equipment.Repository,
	movements *movement.Recorder,
	writer spreadsheet.Writer,
	guard *userhttp.AuthGuard,
	uploadDir string,
) *ImportExportHandler {
	return &ImportExportHandler{
		importHandler: command.NewImportEquipmentHandler(repo, movements),
		exportHandler: query.NewExportEquipmentHandler(repo, writer),
		reportHandler: query.NewReportEquipmentHandler(repo, writer),
		guard:         guard,
		uploadDir:     uploadDir,
	}
}

// Import handles POST /import-export/import (multipart xlsx upload)
func (h *ImportExportHandler) Import(w http.ResponseWriter, r *http.Request) {
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

	principal, _ := auth.PrincipalFromContext(r.Context())
	result, err := h.importHandler.Handle(r.Context(), command.ImportEquipmentCommand{
		Actor:  principal.Actor(),
		Reader: spreadsheet.NewExcelReader(path),
	})
	if err != nil {
		if errors.Is(err, equipment.ErrValidation) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Export handles GET /import-export/export
func (h *ImportExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	data, err := h.exportHandler.Handle(query.ExportEquipmentQuery{
		Query:       params.Get("q"),
		Status:      params.Get("status"),
		Category:    params.Get("category"),
		Location:    params.Get("location"),
		Responsible: params.Get("responsible"),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendWorkbook(w, "equipment.xlsx", data)
}

// Report handles GET /import-export/report
func (h *ImportExportHandler) Report(w http.ResponseWriter, r *http.Request) {
	data, err := h.reportHandler.Handle(query.ReportEquipmentQuery{
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	name := fmt.Sprintf("report-%s.xlsx", time.Now().Format("2006-01-02"))
	sendWorkbook(w, name, data)
}

func (h *ImportExportHandler) saveUpload(src io.Reader) (string, error) {
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

func sendWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the import-export routes
func (h *ImportExportHandler) RegisterRoutes(router *mux.Router) {
	editors := []string{userdom.RoleAdmin, userdom.RoleEditor}

	router.HandleFunc("/import-export/import", h.guard.Require(h.Import, editors...)).Methods("POST")
	router.HandleFunc("/import-export/export", h.guard.Authenticate(h.Export)).Methods("GET")
	router.HandleFunc("/import-export/report", h.guard.Authenticate(h.Report)).Methods("GET")
}

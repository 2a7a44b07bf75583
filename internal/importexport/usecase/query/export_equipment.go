package query

import (
	"time"

	equipment "equiptrack/internal/equipment/domain"
	"equiptrack/internal/spreadsheet"
)

// exportColumns is the fixed workbook layout of equipment exports
var exportColumns = []spreadsheet.Column{
	{Header: "Наименование", Width: 28},
	{Header: "Производитель", Width: 18},
	{Header: "Модель", Width: 16},
	{Header: "Серийный номер", Width: 16},
	{Header: "Инв. номер", Width: 16},
	{Header: "Дата ввода в эксплуатацию", Width: 18},
	{Header: "Стоимость", Width: 12},
	{Header: "Местоположение", Width: 18},
	{Header: "Ответственный", Width: 20},
	{Header: "Кому передан", Width: 18},
	{Header: "Когда передан", Width: 18},
	{Header: "Статус", Width: 14},
	{Header: "Примечание", Width: 22},
}

// ExportEquipmentQuery selects which records end up in the workbook.
// Exports never apply the default listing exclusions.
type ExportEquipmentQuery struct {
	Query       string
	Status      string
	Category    string
	Location    string
	Responsible string
}

// ExportEquipmentHandler renders equipment into a downloadable workbook
type ExportEquipmentHandler struct {
	repo   equipment.Repository
	writer spreadsheet.Writer
}

// NewExportEquipmentHandler creates a new export handler
func NewExportEquipmentHandler(repo equipment.Repository, writer spreadsheet.Writer) *ExportEquipmentHandler {
	return &ExportEquipmentHandler{repo: repo, writer: writer}
}

// Handle executes the export query
func (h *ExportEquipmentHandler) Handle(q ExportEquipmentQuery) ([]byte, error) {
	items, _, err := h.repo.List(equipment.ListFilter{
		Query:         q.Query,
		Status:        q.Status,
		Category:      q.Category,
		Location:      q.Location,
		Responsible:   q.Responsible,
		SortBy:        "name",
		Order:         "asc",
		IncludeHidden: true,
		AllStatuses:   q.Status == "",
		Unlimited:     true,
	})
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, exportRow(item))
	}
	return h.writer.Write("Оборудование", exportColumns, rows)
}

func exportRow(item equipment.Equipment) []interface{} {
	return []interface{}{
		item.Name,
		item.Manufacturer,
		item.Model,
		strOrEmpty(item.SerialNumber),
		strOrEmpty(item.InventoryNumber),
		formatDate(item.PurchaseDate),
		costCell(item.Cost),
		item.Location,
		item.Responsible,
		item.TransferTo,
		formatDate(item.TransferDate),
		statusLabel(item.Status),
		item.Note,
	}
}

// statusLabels are the human-readable export values
var statusLabels = map[string]string{
	equipment.StatusInUse:      "В эксплуатации",
	equipment.StatusInStock:    "На складе",
	equipment.StatusInRepair:   "В ремонте",
	equipment.StatusToWriteoff: "На списание",
	equipment.StatusWrittenOff: "Списано",
}

func statusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02.01.2006")
}

// costCell keeps the cost numeric so spreadsheet formulas work on it
func costCell(cost *float64) interface{} {
	if cost == nil {
		return ""
	}
	return *cost
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

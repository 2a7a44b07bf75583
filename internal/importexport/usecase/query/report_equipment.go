package query

import (
	equipment "equiptrack/internal/equipment/domain"
	"equiptrack/internal/spreadsheet"
)

// reportColumns is the condensed layout of the summary report
var reportColumns = []spreadsheet.Column{
	{Header: "Наименование", Width: 28},
	{Header: "Категория", Width: 18},
	{Header: "Инв. номер", Width: 16},
	{Header: "Статус", Width: 14},
	{Header: "Местоположение", Width: 18},
	{Header: "Ответственный", Width: 20},
	{Header: "Стоимость", Width: 12},
}

// ReportEquipmentQuery narrows the report by status
type ReportEquipmentQuery struct {
	Status string
}

// ReportEquipmentHandler renders the condensed status report workbook
type ReportEquipmentHandler struct {
	repo   equipment.Repository
	writer spreadsheet.Writer
}

// NewReportEquipmentHandler creates a new report handler
func NewReportEquipmentHandler(repo equipment.Repository, writer spreadsheet.Writer) *ReportEquipmentHandler {
	return &ReportEquipmentHandler{repo: repo, writer: writer}
}

// Handle executes the report query
func (h *ReportEquipmentHandler) Handle(q ReportEquipmentQuery) ([]byte, error) {
	items, _, err := h.repo.List(equipment.ListFilter{
		Status:        q.Status,
		SortBy:        "status",
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
		rows = append(rows, []interface{}{
			item.Name,
			item.Category,
			strOrEmpty(item.InventoryNumber),
			statusLabel(item.Status),
			item.Location,
			item.Responsible,
			costCell(item.Cost),
		})
	}
	return h.writer.Write("Отчёт", reportColumns, rows)
}

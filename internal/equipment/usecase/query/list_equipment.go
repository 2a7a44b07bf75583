package query

import "equiptrack/internal/equipment/domain"

// ListEquipmentQuery represents the query to list equipment records
type ListEquipmentQuery struct {
	Filter domain.ListFilter
}

// ListEquipmentResult carries the page and the total match count
type ListEquipmentResult struct {
	Items []domain.Equipment `json:"items"`
	Total int64              `json:"total"`
}

// ListEquipmentHandler handles equipment listing
type ListEquipmentHandler struct {
	repo domain.Repository
}

// NewListEquipmentHandler creates a new list equipment handler
func NewListEquipmentHandler(repo domain.Repository) *ListEquipmentHandler {
	return &ListEquipmentHandler{repo: repo}
}

// Handle executes the query
func (h *ListEquipmentHandler) Handle(q ListEquipmentQuery) (*ListEquipmentResult, error) {
	items, total, err := h.repo.List(q.Filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Equipment{}
	}
	return &ListEquipmentResult{Items: items, Total: total}, nil
}

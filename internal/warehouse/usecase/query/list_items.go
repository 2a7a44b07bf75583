package query

import "equiptrack/internal/warehouse/domain"

// ListItemsQuery represents the query to list stock lines
type ListItemsQuery struct {
	Filter domain.ListFilter
}

// ListItemsHandler handles warehouse listing
type ListItemsHandler struct {
	repo domain.Repository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(repo domain.Repository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

// Handle executes the query
func (h *ListItemsHandler) Handle(q ListItemsQuery) ([]domain.WarehouseItem, error) {
	items, err := h.repo.List(q.Filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.WarehouseItem{}
	}
	return items, nil
}

package query

import "equiptrack/internal/movement/domain"

// ListMovementsQuery represents the query to browse the audit trail
type ListMovementsQuery struct {
	Filter domain.Filter
}

// ListMovementsHandler handles movement log queries
type ListMovementsHandler struct {
	repo domain.Repository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.Repository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the query
func (h *ListMovementsHandler) Handle(q ListMovementsQuery) ([]domain.MovementLog, error) {
	items, err := h.repo.Find(q.Filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MovementLog{}
	}
	return items, nil
}

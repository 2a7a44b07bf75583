package query

import "equiptrack/internal/equipment/domain"

// GetEquipmentQuery represents the query to fetch one equipment record
type GetEquipmentQuery struct {
	ID uint
}

// GetEquipmentHandler handles single equipment lookups
type GetEquipmentHandler struct {
	repo domain.Repository
}

// NewGetEquipmentHandler creates a new get equipment handler
func NewGetEquipmentHandler(repo domain.Repository) *GetEquipmentHandler {
	return &GetEquipmentHandler{repo: repo}
}

// Handle executes the query
func (h *GetEquipmentHandler) Handle(q GetEquipmentQuery) (*domain.Equipment, error) {
	return h.repo.FindByID(q.ID)
}

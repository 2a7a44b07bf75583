package query

import (
	"equiptrack/internal/user/domain"
)

// ListUsersQuery represents a paginated user listing
type ListUsersQuery struct {
	Query  string
	Limit  int
	Offset int
}

// ListUsersResult holds the page and total count
type ListUsersResult struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
}

// ListUsersHandler handles user listing queries
type ListUsersHandler struct {
	repo domain.Repository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.Repository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) (*ListUsersResult, error) {
	users, total, err := h.repo.List(q.Query, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return &ListUsersResult{Users: users, Total: total}, nil
}

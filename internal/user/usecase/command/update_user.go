package command

import (
	"fmt"
	"strings"

	"equiptrack/internal/user/domain"
)

// UpdateUserCommand patches a user's name or role
type UpdateUserCommand struct {
	ID   uint
	Name *string
	Role *string
}

// UpdateUserHandler handles user updates
type UpdateUserHandler struct {
	repo domain.Repository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.Repository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		user.Name = name
	}
	if cmd.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*cmd.Role))
		if !domain.ValidRole(role) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *cmd.Role)
		}
		user.Role = role
	}

	if err := h.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

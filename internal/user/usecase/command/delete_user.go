package command

import (
	"fmt"

	"equiptrack/internal/user/domain"
)

// DeleteUserCommand removes a user account
type DeleteUserCommand struct {
	ID      uint
	ActorID uint
}

// DeleteUserHandler handles user deletion
type DeleteUserHandler struct {
	repo domain.Repository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.Repository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command
func (h *DeleteUserHandler) Handle(cmd DeleteUserCommand) error {
	if cmd.ID == cmd.ActorID {
		return fmt.Errorf("%w: cannot delete own account", domain.ErrValidation)
	}
	return h.repo.Delete(cmd.ID)
}

package command

import (
	"fmt"

	"equiptrack/internal/user/domain"
	"equiptrack/pkg/auth"
)

// ResetPasswordCommand issues a fresh temporary password for a user
type ResetPasswordCommand struct {
	ID uint
}

// ResetPasswordResult carries the one-time plaintext password
type ResetPasswordResult struct {
	TempPassword string `json:"tempPassword"`
}

// ResetPasswordHandler handles password resets
type ResetPasswordHandler struct {
	repo domain.Repository
}

// NewResetPasswordHandler creates a new reset password handler
func NewResetPasswordHandler(repo domain.Repository) *ResetPasswordHandler {
	return &ResetPasswordHandler{repo: repo}
}

// Handle executes the reset password command
func (h *ResetPasswordHandler) Handle(cmd ResetPasswordCommand) (*ResetPasswordResult, error) {
	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	password, err := generatePassword(10)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user.Password = hashed
	if err := h.repo.Update(user); err != nil {
		return nil, err
	}
	return &ResetPasswordResult{TempPassword: password}, nil
}

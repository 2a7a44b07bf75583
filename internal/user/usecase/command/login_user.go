package command

import (
	"fmt"

	"equiptrack/internal/user/domain"
	"equiptrack/pkg/auth"
)

// LoginUserCommand authenticates by email or display name
type LoginUserCommand struct {
	Email    string
	Name     string
	Password string
}

// LoginResponse carries the signed token and the authenticated user
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user login
type LoginUserHandler struct {
	repo domain.Repository
}

// NewLoginUserHandler creates a new login handler
func NewLoginUserHandler(repo domain.Repository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle executes the login command
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	identifier := cmd.Email
	if identifier == "" {
		identifier = cmd.Name
	}
	if identifier == "" {
		return nil, fmt.Errorf("%w: email or name is required", domain.ErrValidation)
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	user, err := h.repo.FindByEmail(identifier)
	if err != nil {
		user, err = h.repo.FindByName(identifier)
	}
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{Token: token, User: user}, nil
}

package command

import (
	"fmt"
	"strings"

	"equiptrack/internal/user/domain"
	"equiptrack/pkg/auth"
)

// ErrRegistrationDisabled is returned when self-service registration is off
var ErrRegistrationDisabled = fmt.Errorf("registration is disabled")

// RegisterUserCommand represents self-service registration
type RegisterUserCommand struct {
	Email    string
	Name     string
	Password string
}

// RegisterUserHandler handles user registration
type RegisterUserHandler struct {
	repo    domain.Repository
	enabled bool
}

// NewRegisterUserHandler creates a new registration handler
func NewRegisterUserHandler(repo domain.Repository, enabled bool) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, enabled: enabled}
}

// Handle executes the registration command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*LoginResponse, error) {
	if !h.enabled {
		return nil, ErrRegistrationDisabled
	}

	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if len(cmd.Password) < 4 {
		return nil, fmt.Errorf("%w: password must be at least 4 characters", domain.ErrValidation)
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		name = email
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:    email,
		Name:     name,
		Password: hashed,
		Role:     domain.RoleUser,
	}
	if err := h.repo.Create(user); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResponse{Token: token, User: user}, nil
}

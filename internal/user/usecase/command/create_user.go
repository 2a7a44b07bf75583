package command

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"equiptrack/internal/user/domain"
	"equiptrack/pkg/auth"
)

const tempPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CreateUserCommand represents an administrator creating an account
type CreateUserCommand struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// CreateUserResult carries the created user and, when the password was
// generated, the one-time plaintext to hand over out of band.
type CreateUserResult struct {
	User         *domain.User `json:"user"`
	TempPassword string       `json:"tempPassword,omitempty"`
}

// CreateUserHandler handles administrative user creation
type CreateUserHandler struct {
	repo domain.Repository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.Repository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(cmd CreateUserCommand) (*CreateUserResult, error) {
	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	role := strings.ToUpper(strings.TrimSpace(cmd.Role))
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, cmd.Role)
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		name = email
	}

	password := cmd.Password
	tempPassword := ""
	if password == "" {
		generated, err := generatePassword(10)
		if err != nil {
			return nil, fmt.Errorf("failed to generate password: %w", err)
		}
		password = generated
		tempPassword = generated
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:    email,
		Name:     name,
		Password: hashed,
		Role:     role,
	}
	if err := h.repo.Create(user); err != nil {
		return nil, err
	}
	return &CreateUserResult{User: user, TempPassword: tempPassword}, nil
}

func generatePassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"equiptrack/internal/user/domain"
	"equiptrack/internal/user/usecase/command"
	"equiptrack/internal/user/usecase/query"
	"equiptrack/pkg/auth"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	loginHandler    *command.LoginUserHandler
	registerHandler *command.RegisterUserHandler
	createHandler   *command.CreateUserHandler
	updateHandler   *command.UpdateUserHandler
	resetHandler    *command.ResetPasswordHandler
	deleteHandler   *command.DeleteUserHandler

	listHandler *query.ListUsersHandler

	guard *AuthGuard
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.Repository, guard *AuthGuard, allowRegistration bool) *UserHandler {
	return &UserHandler{
		loginHandler:    command.NewLoginUserHandler(repo),
		registerHandler: command.NewRegisterUserHandler(repo, allowRegistration),
		createHandler:   command.NewCreateUserHandler(repo),
		updateHandler:   command.NewUpdateUserHandler(repo),
		resetHandler:    command.NewResetPasswordHandler(repo),
		deleteHandler:   command.NewDeleteUserHandler(repo),
		listHandler:     query.NewListUsersHandler(repo),
		guard:           guard,
	}
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.LoginUserCommand{Email: req.Email, Name: req.Name, Password: req.Password}
	response, err := h.loginHandler.Handle(cmd)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	respondJSON(w, http.StatusOK, response)
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{Email: req.Email, Name: req.Name, Password: req.Password}
	response, err := h.registerHandler.Handle(cmd)
	if err != nil {
		switch {
		case errors.Is(err, command.ErrRegistrationDisabled):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrEmailTaken):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusCreated, response)
}

// Me handles GET /auth/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, principal)
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listHandler.Handle(query.ListUsersQuery{
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CreateUser handles POST /admin/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateUserCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	}
	result, err := h.createHandler.Handle(cmd)
	if err != nil {
		respondUserError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// UpdateUser handles PATCH /admin/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name *string `json:"name"`
		Role *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.updateHandler.Handle(command.UpdateUserCommand{ID: id, Name: req.Name, Role: req.Role})
	if err != nil {
		respondUserError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ResetPassword handles POST /admin/users/{id}/reset-password
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.resetHandler.Handle(command.ResetPasswordCommand{ID: id})
	if err != nil {
		respondUserError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	principal, _ := auth.PrincipalFromContext(r.Context())

	if err := h.deleteHandler.Handle(command.DeleteUserCommand{ID: id, ActorID: principal.ID}); err != nil {
		respondUserError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return 0, false
	}
	return uint(id), true
}

func respondUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/auth/me", h.guard.Authenticate(h.Me)).Methods("GET")

	router.HandleFunc("/admin/users", h.guard.Require(h.ListUsers, domain.RoleAdmin)).Methods("GET")
	router.HandleFunc("/admin/users", h.guard.Require(h.CreateUser, domain.RoleAdmin)).Methods("POST")
	router.HandleFunc("/admin/users/{id}", h.guard.Require(h.UpdateUser, domain.RoleAdmin)).Methods("PATCH")
	router.HandleFunc("/admin/users/{id}/reset-password", h.guard.Require(h.ResetPassword, domain.RoleAdmin)).Methods("POST")
	router.HandleFunc("/admin/users/{id}", h.guard.Require(h.DeleteUser, domain.RoleAdmin)).Methods("DELETE")
}

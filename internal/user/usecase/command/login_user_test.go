package command

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equiptrack/internal/user/domain"
	"equiptrack/internal/user/repository"
	"equiptrack/pkg/auth"
)

func setupUsers(t *testing.T) *repository.GormUserRepository {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewGormUserRepository(db)
}

func seedUser(t *testing.T, repo *repository.GormUserRepository, email, name, password, role string) *domain.User {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{Email: email, Name: name, Password: hashed, Role: role}
	if err := repo.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginByEmailAndByName(t *testing.T) {
	repo := setupUsers(t)
	seedUser(t, repo, "ivan@local", "Иван", "pass123", domain.RoleEditor)
	handler := NewLoginUserHandler(repo)

	resp, err := handler.Handle(LoginUserCommand{Email: "ivan@local", Password: "pass123"})
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if resp.Token == "" || resp.User.Role != domain.RoleEditor {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// The same field accepts a display name when it is not an email
	resp, err = handler.Handle(LoginUserCommand{Name: "Иван", Password: "pass123"})
	if err != nil {
		t.Fatalf("login by name: %v", err)
	}
	if resp.User.Email != "ivan@local" {
		t.Fatalf("resolved wrong account: %s", resp.User.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := setupUsers(t)
	seedUser(t, repo, "ivan@local", "Иван", "pass123", domain.RoleUser)
	handler := NewLoginUserHandler(repo)

	_, err := handler.Handle(LoginUserCommand{Email: "ivan@local", Password: "nope"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Unknown accounts get the same error, not a not-found leak
	_, err = handler.Handle(LoginUserCommand{Email: "ghost@local", Password: "pass123"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDisabled(t *testing.T) {
	repo := setupUsers(t)
	handler := NewRegisterUserHandler(repo, false)

	_, err := handler.Handle(RegisterUserCommand{Email: "new@local", Password: "pass123"})
	if !errors.Is(err, ErrRegistrationDisabled) {
		t.Fatalf("expected ErrRegistrationDisabled, got %v", err)
	}
}

func TestRegisterCreatesPlainUser(t *testing.T) {
	repo := setupUsers(t)
	handler := NewRegisterUserHandler(repo, true)

	resp, err := handler.Handle(RegisterUserCommand{Email: "New@Local", Password: "pass123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Email != "new@local" {
		t.Fatalf("email not normalized: %s", resp.User.Email)
	}
	if resp.User.Role != domain.RoleUser {
		t.Fatalf("self-registered accounts must start as USER, got %s", resp.User.Role)
	}

	_, err = handler.Handle(RegisterUserCommand{Email: "new@local", Password: "pass123"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestDeleteOwnAccountRejected(t *testing.T) {
	repo := setupUsers(t)
	admin := seedUser(t, repo, "admin@local", "Admin", "pass123", domain.RoleAdmin)
	other := seedUser(t, repo, "other@local", "Other", "pass123", domain.RoleViewer)
	handler := NewDeleteUserHandler(repo)

	err := handler.Handle(DeleteUserCommand{ID: admin.ID, ActorID: admin.ID})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	if err := handler.Handle(DeleteUserCommand{ID: other.ID, ActorID: admin.ID}); err != nil {
		t.Fatalf("delete other: %v", err)
	}
	if _, err := repo.FindByID(other.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

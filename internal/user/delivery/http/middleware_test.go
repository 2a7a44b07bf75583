package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equiptrack/internal/user/domain"
	"equiptrack/internal/user/repository"
	"equiptrack/pkg/auth"
)

func setupGuard(t *testing.T) (*AuthGuard, *repository.GormUserRepository) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := repository.NewGormUserRepository(db)
	return NewAuthGuard(repo), repo
}

func tokenFor(t *testing.T, repo *repository.GormUserRepository, email, role string) string {
	hashed, err := auth.HashPassword("pass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{Email: email, Name: email, Password: hashed, Role: role}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func TestAuthenticateRejectsMissingOrBadToken(t *testing.T) {
	guard, _ := setupGuard(t)
	handler := guard.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/equipment", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no header: expected 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/equipment", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsDeletedAccount(t *testing.T) {
	guard, repo := setupGuard(t)
	token := tokenFor(t, repo, "gone@local", domain.RoleAdmin)

	user, err := repo.FindByEmail("gone@local")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := repo.Delete(user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	handler := guard.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/equipment", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("deleted account: expected 401, got %d", rec.Code)
	}
}

func TestRequireEnforcesRoles(t *testing.T) {
	guard, repo := setupGuard(t)
	adminToken := tokenFor(t, repo, "admin@local", domain.RoleAdmin)
	viewerToken := tokenFor(t, repo, "viewer@local", domain.RoleViewer)

	handler := guard.Require(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := auth.PrincipalFromContext(r.Context())
		fmt.Fprint(w, principal.Email)
	}, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/equipment/1", nil)
	req.Header.Set("Authorization", "Bearer "+viewerToken)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer: expected 403, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/equipment/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "admin@local" {
		t.Fatalf("principal not injected: %q", rec.Body.String())
	}
}

func TestRequireDemotedRoleTakesEffect(t *testing.T) {
	guard, repo := setupGuard(t)
	token := tokenFor(t, repo, "ed@local", domain.RoleEditor)

	// Demote after the token was issued; the guard re-reads the role
	user, err := repo.FindByEmail("ed@local")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	user.Role = domain.RoleViewer
	if err := repo.Update(user); err != nil {
		t.Fatalf("update: %v", err)
	}

	handler := guard.Require(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, domain.RoleAdmin, domain.RoleEditor)

	req := httptest.NewRequest(http.MethodPost, "/equipment", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("demoted editor: expected 403, got %d", rec.Code)
	}
}

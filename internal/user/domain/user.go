package domain

import (
	"errors"
	"time"
)

// Roles, strongest first
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
	RoleViewer = "VIEWER"
	RoleUser   = "USER"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidRole reports whether r is a known role
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer, RoleUser:
		return true
	}
	return false
}

// User represents an account. The password hash never leaves the server.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"not null;default:'USER'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// CanEdit reports whether the role may create and update records
func (u *User) CanEdit() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

// IsAdmin reports whether the role may delete records and manage users
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Repository defines the contract for user data access
type Repository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByName(name string) (*User, error)
	List(query string, limit, offset int) ([]User, int64, error)
	Update(user *User) error
	Delete(id uint) error
}

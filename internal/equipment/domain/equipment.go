package domain

import (
	"errors"
	"time"
)

// Equipment statuses
const (
	StatusInUse      = "in_use"
	StatusInStock    = "in_stock"
	StatusInRepair   = "in_repair"
	StatusToWriteoff = "to_writeoff"
	StatusWrittenOff = "written_off"
)

// Sentinel errors mapped to HTTP statuses by the delivery layer
var (
	ErrNotFound   = errors.New("equipment not found")
	ErrConflict   = errors.New("serialNumber or inventoryNumber must be unique")
	ErrValidation = errors.New("validation failed")
)

// ValidStatus reports whether s is a known equipment status
func ValidStatus(s string) bool {
	switch s {
	case StatusInUse, StatusInStock, StatusInRepair, StatusToWriteoff, StatusWrittenOff:
		return true
	}
	return false
}

// Equipment is a unit of tracked hardware in operational inventory.
// SerialNumber and InventoryNumber are each globally unique when present;
// the constraint lives in the database so concurrent writers cannot race past
// application checks.
type Equipment struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"not null;index"`
	Category        string     `json:"category" gorm:"not null;index"`
	SerialNumber    *string    `json:"serialNumber" gorm:"uniqueIndex"`
	InventoryNumber *string    `json:"inventoryNumber" gorm:"uniqueIndex"`
	PurchaseDate    *time.Time `json:"purchaseDate"`
	Cost            *float64   `json:"cost"`
	Location        string     `json:"location"`
	Responsible     string     `json:"responsible"`
	Status          string     `json:"status" gorm:"not null;default:'in_use';index"`
	Manufacturer    string     `json:"manufacturer"`
	Model           string     `json:"model"`
	Condition       string     `json:"condition"`
	TransferTo      string     `json:"transferTo"`
	TransferDate    *time.Time `json:"transferDate"`
	ReturnDate      *time.Time `json:"returnDate"`
	Note            string     `json:"note"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TableName specifies the table name
func (Equipment) TableName() string {
	return "equipment"
}

// ListFilter narrows equipment listing. Zero-value Status applies the default
// filter (everything except in_stock); ExplicitStatus disables it.
type ListFilter struct {
	Query         string
	Status        string
	Category      string
	Location      string
	Responsible   string
	SortBy        string
	Order         string
	Limit         int
	Offset        int
	IncludeHidden bool // include rows without inventory number
	AllStatuses   bool // disable the default in_stock exclusion
	Unlimited     bool // no pagination (exports)
}

// Patch is an explicit partial-update of an equipment record. Nil fields are
// left untouched.
type Patch struct {
	Name            *string
	Category        *string
	SerialNumber    *string
	InventoryNumber *string
	PurchaseDate    *time.Time
	Cost            *float64
	Location        *string
	Responsible     *string
	Status          *string
	Manufacturer    *string
	Model           *string
	Condition       *string
	TransferTo      *string
	TransferDate    *time.Time
	ReturnDate      *time.Time
	Note            *string
}

// Repository defines the contract for equipment data access
type Repository interface {
	Create(item *Equipment) error
	FindByID(id uint) (*Equipment, error)
	FindBySerialNumber(serial string) (*Equipment, error)
	FindByInventoryNumber(inv string) (*Equipment, error)
	List(filter ListFilter) ([]Equipment, int64, error)
	Update(item *Equipment) error
	Delete(id uint) error
}

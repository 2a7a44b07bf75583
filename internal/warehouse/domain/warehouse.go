package domain

import (
	"errors"
	"time"

	equipment "equiptrack/internal/equipment/domain"
)

// Warehouse item statuses
const (
	StatusInStock  = "in_stock"
	StatusReserved = "reserved"
	StatusIssued   = "issued"
	StatusArchived = "archived"
)

// DefaultUnit is the unit assigned to rows created from equipment returns
const DefaultUnit = "шт"

var (
	ErrNotFound   = errors.New("warehouse item not found")
	ErrValidation = errors.New("validation failed")
)

// WarehouseItem is a bulk stock line: a quantity of identical un-deployed
// units. Rows with the same (name, model) key and status in_stock are merged
// rather than duplicated.
type WarehouseItem struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null;index"`
	Category     string     `json:"category" gorm:"not null"`
	Model        string     `json:"model"`
	Manufacturer string     `json:"manufacturer"`
	SerialNumber string     `json:"serialNumber"`
	Quantity     int        `json:"quantity" gorm:"not null;default:1"`
	Unit         string     `json:"unit" gorm:"not null;default:'шт'"`
	UnitCost     *float64   `json:"unitCost"`
	DateReceived *time.Time `json:"dateReceived"`
	Supplier     string     `json:"supplier"`
	Status       string     `json:"status" gorm:"not null;default:'in_stock';index"`
	Location     string     `json:"location"`
	Note         string     `json:"note"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TableName specifies the table name
func (WarehouseItem) TableName() string {
	return "warehouse_items"
}

// ListFilter narrows warehouse listing. Status "all" disables the default
// archived exclusion.
type ListFilter struct {
	Query  string
	Status string
	SortBy string
	Order  string
}

// TransferRequest converts N bulk units into N equipment records.
// Qty must already be validated positive; it is clamped to the source
// quantity. Cost must already be sanitized by the caller.
type TransferRequest struct {
	Actor           string
	SourceID        uint
	Qty             int
	InventoryNumber string
	Cost            *float64
	Location        string
	Responsible     string
	PurchaseDate    *time.Time
	Note            string
}

// TransferResult reports the outcome of an atomic transfer
type TransferResult struct {
	Created   []equipment.Equipment
	Remaining int
}

// Repository defines the contract for warehouse data access
type Repository interface {
	FindByID(id uint) (*WarehouseItem, error)
	List(filter ListFilter) ([]WarehouseItem, error)
	// MergeOrCreate applies the (name, model) merge contract: an existing
	// in_stock row absorbs the quantity, otherwise the row is inserted.
	MergeOrCreate(item *WarehouseItem) (merged bool, result *WarehouseItem, err error)
	Update(item *WarehouseItem) error
	Delete(id uint) error
	// TransferToInventory executes the warehouse→equipment conversion as a
	// single atomic unit, movement log included.
	TransferToInventory(req TransferRequest) (*TransferResult, error)
	// ReturnToStock mirrors one equipment unit back into bulk stock.
	ReturnToStock(item *equipment.Equipment) (merged bool, rowID uint, err error)
}

package domain

import "time"

// Table identifiers recorded in movement entries
const (
	TableWarehouse = "warehouse"
	TableInventory = "inventory"
)

// MovementLog is an append-only audit record of a state-changing action.
// Entries are never updated or deleted by normal operations.
type MovementLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Datetime  time.Time `json:"datetime" gorm:"index;not null"`
	User      string    `json:"user" gorm:"not null"`
	Action    string    `json:"action" gorm:"not null"`
	ItemName  string    `json:"itemName" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	FromTable string    `json:"fromTable"`
	ToTable   string    `json:"toTable"`
	Note      string    `json:"note"`
}

// TableName specifies the table name
func (MovementLog) TableName() string {
	return "movement_logs"
}

// Filter narrows movement listing
type Filter struct {
	User     string
	Action   string
	ItemName string
	From     *time.Time
	To       *time.Time
	Limit    int
}

// Repository defines the contract for movement log access
type Repository interface {
	Record(entry *MovementLog) error
	Find(filter Filter) ([]MovementLog, error)
}

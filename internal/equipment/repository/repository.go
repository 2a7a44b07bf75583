package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"equiptrack/internal/equipment/domain"
)

// Column allow-list for sorting; unknown keys fall back to created_at
var sortColumns = map[string]string{
	"name":            "name",
	"category":        "category",
	"serialNumber":    "serial_number",
	"inventoryNumber": "inventory_number",
	"purchaseDate":    "purchase_date",
	"cost":            "cost",
	"location":        "location",
	"responsible":     "responsible",
	"status":          "status",
	"manufacturer":    "manufacturer",
	"model":           "model",
	"createdAt":       "created_at",
}

// GormEquipmentRepository implements domain.Repository using GORM
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewGormEquipmentRepository creates a new GORM equipment repository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

func (r *GormEquipmentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Equipment{})
}

// Create inserts a new equipment row. Unique-index violations surface as
// domain.ErrConflict.
func (r *GormEquipmentRepository) Create(item *domain.Equipment) error {
	if err := r.db.Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

// FindByID retrieves an equipment row by id
func (r *GormEquipmentRepository) FindByID(id uint) (*domain.Equipment, error) {
	var item domain.Equipment
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}
	return &item, nil
}

// FindBySerialNumber retrieves an equipment row by serial number
func (r *GormEquipmentRepository) FindBySerialNumber(serial string) (*domain.Equipment, error) {
	return r.findByColumn("serial_number", serial)
}

// FindByInventoryNumber retrieves an equipment row by inventory number
func (r *GormEquipmentRepository) FindByInventoryNumber(inv string) (*domain.Equipment, error) {
	return r.findByColumn("inventory_number", inv)
}

func (r *GormEquipmentRepository) findByColumn(column, value string) (*domain.Equipment, error) {
	var item domain.Equipment
	if err := r.db.Where(column+" = ?", value).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}
	return &item, nil
}

// List returns matching equipment with the total count before pagination
func (r *GormEquipmentRepository) List(filter domain.ListFilter) ([]domain.Equipment, int64, error) {
	query := r.db.Model(&domain.Equipment{})

	// Items without an inventory number are hidden from the default listing
	if !filter.IncludeHidden {
		query = query.Where("inventory_number IS NOT NULL")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	} else if !filter.AllStatuses {
		query = query.Where("status <> ?", domain.StatusInStock)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", contains(filter.Location))
	}
	if filter.Responsible != "" {
		query = query.Where("LOWER(responsible) LIKE ?", contains(filter.Responsible))
	}
	if filter.Query != "" {
		q := contains(filter.Query)
		query = query.Where(
			r.db.Where("LOWER(name) LIKE ?", q).
				Or("LOWER(category) LIKE ?", q).
				Or("LOWER(serial_number) LIKE ?", q).
				Or("LOWER(inventory_number) LIKE ?", q).
				Or("LOWER(location) LIKE ?", q).
				Or("LOWER(responsible) LIKE ?", q).
				Or("LOWER(status) LIKE ?", q).
				Or("LOWER(manufacturer) LIKE ?", q).
				Or("LOWER(model) LIKE ?", q).
				Or("LOWER(\"condition\") LIKE ?", q).
				Or("LOWER(transfer_to) LIKE ?", q).
				Or("LOWER(note) LIKE ?", q),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count equipment: %w", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction)

	if !filter.Unlimited {
		limit := filter.Limit
		if limit <= 0 {
			limit = 25
		}
		if limit > 100 {
			limit = 100
		}
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query = query.Limit(limit).Offset(offset)
	}

	var items []domain.Equipment
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, total, nil
}

// Update persists all fields of an equipment row
func (r *GormEquipmentRepository) Update(item *domain.Equipment) error {
	if err := r.db.Save(item).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to update equipment: %w", err)
	}
	return nil
}

// Delete removes an equipment row
func (r *GormEquipmentRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Equipment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete equipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// isUniqueViolation matches unique-constraint errors from both Postgres and
// SQLite without depending on driver error types.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

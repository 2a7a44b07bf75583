package repository

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	equipment "equiptrack/internal/equipment/domain"
	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/warehouse/domain"
)

var sortColumns = map[string]string{
	"name":         "name",
	"category":     "category",
	"model":        "model",
	"manufacturer": "manufacturer",
	"quantity":     "quantity",
	"unitCost":     "unit_cost",
	"dateReceived": "date_received",
	"supplier":     "supplier",
	"status":       "status",
	"createdAt":    "created_at",
}

// GormWarehouseRepository implements domain.Repository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GORM warehouse repository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func (r *GormWarehouseRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.WarehouseItem{})
}

// FindByID retrieves a warehouse row by id
func (r *GormWarehouseRepository) FindByID(id uint) (*domain.WarehouseItem, error) {
	var item domain.WarehouseItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find warehouse item: %w", err)
	}
	return &item, nil
}

// List returns warehouse rows; archived rows are hidden unless asked for
func (r *GormWarehouseRepository) List(filter domain.ListFilter) ([]domain.WarehouseItem, error) {
	query := r.db.Model(&domain.WarehouseItem{})

	switch filter.Status {
	case "":
		query = query.Where("status <> ?", domain.StatusArchived)
	case "all":
		// no status filter
	default:
		query = query.Where("status = ?", filter.Status)
	}

	if filter.Query != "" {
		q := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where(
			r.db.Where("LOWER(name) LIKE ?", q).
				Or("LOWER(category) LIKE ?", q).
				Or("LOWER(manufacturer) LIKE ?", q).
				Or("LOWER(model) LIKE ?", q).
				Or("LOWER(supplier) LIKE ?", q).
				Or("LOWER(serial_number) LIKE ?", q).
				Or("LOWER(note) LIKE ?", q),
		)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		direction = "ASC"
	}

	var items []domain.WarehouseItem
	if err := query.Order(column + " " + direction).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list warehouse items: %w", err)
	}
	return items, nil
}

// findMergeTarget locates the in_stock row sharing the (name, model) key
func findMergeTarget(tx *gorm.DB, name, model string) (*domain.WarehouseItem, error) {
	var existing domain.WarehouseItem
	err := tx.Where("LOWER(name) = ? AND LOWER(model) = ? AND status = ?",
		strings.ToLower(name), strings.ToLower(model), domain.StatusInStock).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find merge target: %w", err)
	}
	return &existing, nil
}

// MergeOrCreate inserts a stock line, merging into an existing in_stock row
// with the same (name, model) key when one exists.
func (r *GormWarehouseRepository) MergeOrCreate(item *domain.WarehouseItem) (bool, *domain.WarehouseItem, error) {
	existing, err := findMergeTarget(r.db, item.Name, item.Model)
	if err != nil {
		return false, nil, err
	}

	if existing == nil {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if item.Unit == "" {
			item.Unit = domain.DefaultUnit
		}
		if item.Status == "" {
			item.Status = domain.StatusInStock
		}
		if err := r.db.Create(item).Error; err != nil {
			return false, nil, fmt.Errorf("failed to create warehouse item: %w", err)
		}
		return false, item, nil
	}

	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}
	existing.Quantity += qty
	if existing.DateReceived == nil {
		existing.DateReceived = item.DateReceived
	}
	if item.Location != "" {
		existing.Location = item.Location
	}
	if item.Note != "" {
		existing.Note = item.Note
	}
	if err := r.db.Save(existing).Error; err != nil {
		return false, nil, fmt.Errorf("failed to merge warehouse item: %w", err)
	}
	return true, existing, nil
}

// Update persists all fields of a warehouse row
func (r *GormWarehouseRepository) Update(item *domain.WarehouseItem) error {
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update warehouse item: %w", err)
	}
	return nil
}

// Delete removes a warehouse row
func (r *GormWarehouseRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.WarehouseItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete warehouse item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReturnToStock mirrors one equipment unit back into bulk stock, merging into
// the matching in_stock line when present.
func (r *GormWarehouseRepository) ReturnToStock(item *equipment.Equipment) (bool, uint, error) {
	existing, err := findMergeTarget(r.db, item.Name, item.Model)
	if err != nil {
		return false, 0, err
	}

	if existing != nil {
		existing.Quantity++
		if existing.DateReceived == nil {
			now := time.Now()
			existing.DateReceived = &now
		}
		if item.Location != "" {
			existing.Location = item.Location
		}
		if item.Note != "" {
			existing.Note = item.Note
		}
		if err := r.db.Save(existing).Error; err != nil {
			return false, 0, fmt.Errorf("failed to merge returned unit: %w", err)
		}
		return true, existing.ID, nil
	}

	now := time.Now()
	serial := ""
	if item.SerialNumber != nil {
		serial = *item.SerialNumber
	}
	row := domain.WarehouseItem{
		Name:         item.Name,
		Category:     item.Category,
		Model:        item.Model,
		Manufacturer: item.Manufacturer,
		SerialNumber: serial,
		Quantity:     1,
		Unit:         domain.DefaultUnit,
		DateReceived: &now,
		Status:       domain.StatusInStock,
		Location:     item.Location,
		Note:         item.Note,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return false, 0, fmt.Errorf("failed to create returned stock line: %w", err)
	}
	return false, row.ID, nil
}

// TransferToInventory converts N bulk units into N equipment records inside a
// single database transaction: equipment rows, source decrement and the
// movement entry commit or roll back together.
func (r *GormWarehouseRepository) TransferToInventory(req domain.TransferRequest) (*domain.TransferResult, error) {
	result := &domain.TransferResult{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var src domain.WarehouseItem
		if err := tx.First(&src, req.SourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load source: %w", err)
		}

		qty := req.Qty
		if qty < 1 {
			qty = 1
		}
		if qty > src.Quantity {
			qty = src.Quantity
		}

		// The serial travels only if no equipment row already carries it
		canUseSerial := false
		if src.SerialNumber != "" {
			var count int64
			if err := tx.Model(&equipment.Equipment{}).
				Where("serial_number = ?", src.SerialNumber).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check serial: %w", err)
			}
			canUseSerial = count == 0
		}

		purchaseDate := req.PurchaseDate
		if purchaseDate == nil {
			now := time.Now()
			purchaseDate = &now
		}

		used := make(map[string]bool)
		for i := 0; i < qty; i++ {
			inv := ""
			if i == 0 {
				inv = req.InventoryNumber
			}
			if inv == "" {
				generated, err := generateInventoryNumber(tx, used)
				if err != nil {
					return err
				}
				inv = generated
			}
			used[inv] = true

			unit := equipment.Equipment{
				Name:            src.Name,
				Category:        src.Category,
				Model:           src.Model,
				Manufacturer:    src.Manufacturer,
				InventoryNumber: &inv,
				PurchaseDate:    purchaseDate,
				Cost:            req.Cost,
				Location:        req.Location,
				Responsible:     req.Responsible,
				Status:          equipment.StatusInUse,
				Note:            req.Note,
			}
			if i == 0 && canUseSerial {
				serial := src.SerialNumber
				unit.SerialNumber = &serial
			}
			if err := tx.Create(&unit).Error; err != nil {
				if isUniqueViolation(err) {
					return equipment.ErrConflict
				}
				return fmt.Errorf("failed to create equipment unit: %w", err)
			}
			result.Created = append(result.Created, unit)
		}

		left := src.Quantity - qty
		status := domain.StatusIssued
		if left <= 0 {
			left = 0
			status = domain.StatusArchived
		}
		if err := tx.Model(&domain.WarehouseItem{}).
			Where("id = ?", src.ID).
			Updates(map[string]interface{}{"quantity": left, "status": status}).Error; err != nil {
			return fmt.Errorf("failed to decrement source: %w", err)
		}
		result.Remaining = left

		entry := movement.MovementLog{
			Datetime:  time.Now(),
			User:      req.Actor,
			Action:    "Перенос в инвентаризацию",
			ItemName:  src.Name,
			Quantity:  qty,
			FromTable: movement.TableWarehouse,
			ToTable:   movement.TableInventory,
			Note:      fmt.Sprintf("Создано %d ед.", qty),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to record transfer movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// generateInventoryNumber produces an INV-nnnn number unused in the batch and
// in the equipment table. Widens to six digits when the short space is busy.
func generateInventoryNumber(tx *gorm.DB, used map[string]bool) (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		span, base := int64(9000), int64(1000)
		if attempt >= 50 {
			span, base = int64(900000), int64(100000)
		}
		n, err := rand.Int(rand.Reader, big.NewInt(span))
		if err != nil {
			return "", fmt.Errorf("failed to generate inventory number: %w", err)
		}
		candidate := fmt.Sprintf("INV-%d", base+n.Int64())
		if used[candidate] {
			continue
		}
		var count int64
		if err := tx.Model(&equipment.Equipment{}).
			Where("inventory_number = ?", candidate).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check inventory number: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted inventory number attempts")
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

package repository

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"equiptrack/internal/movement/domain"
)

// GormMovementRepository implements domain.Repository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GORM movement repository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.MovementLog{})
}

// Record appends a movement entry
func (r *GormMovementRepository) Record(entry *domain.MovementLog) error {
	if entry.Datetime.IsZero() {
		entry.Datetime = time.Now()
	}
	if entry.Quantity == 0 {
		entry.Quantity = 1
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record movement: %w", err)
	}
	return nil
}

// Find lists movement entries newest first
func (r *GormMovementRepository) Find(filter domain.Filter) ([]domain.MovementLog, error) {
	query := r.db.Model(&domain.MovementLog{})

	if filter.User != "" {
		query = query.Where("LOWER(\"user\") LIKE ?", "%"+lower(filter.User)+"%")
	}
	if filter.Action != "" {
		query = query.Where("LOWER(action) LIKE ?", "%"+lower(filter.Action)+"%")
	}
	if filter.ItemName != "" {
		query = query.Where("LOWER(item_name) = ?", lower(filter.ItemName))
	}
	if filter.From != nil {
		query = query.Where("datetime >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("datetime <= ?", *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	if limit > 1000 {
		limit = 1000
	}

	var items []domain.MovementLog
	if err := query.Order("datetime DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return items, nil
}

func lower(s string) string {
	return strings.ToLower(s)
}

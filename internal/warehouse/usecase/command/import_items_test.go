package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	movement "equiptrack/internal/movement/domain"
	movementrepo "equiptrack/internal/movement/repository"
	"equiptrack/internal/warehouse/domain"
	"equiptrack/internal/warehouse/repository"
)

// sliceReader feeds a fixed grid as a sheet
type sliceReader struct {
	rows [][]string
}

func (r *sliceReader) Rows() ([][]string, error) {
	return r.rows, nil
}

func setupImport(t *testing.T) (*gorm.DB, *ImportItemsHandler) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.WarehouseItem{}, &movement.MovementLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := repository.NewGormWarehouseRepository(db)
	recorder := movement.NewRecorder(movementrepo.NewGormMovementRepository(db))
	return db, NewImportItemsHandler(repo, recorder)
}

func TestImportSkipsBadRowsKeepsGood(t *testing.T) {
	db, handler := setupImport(t)

	reader := &sliceReader{rows: [][]string{
		{"Наименование", "Категория", "Количество"},
		{"Кабель UTP", "Сеть", "10"},
		{"", "Сеть", "5"},
		{"Патч-корд", "", "2"},
	}}

	result, err := handler.Handle(context.Background(), ImportItemsCommand{Actor: "admin@local", Reader: reader})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if result.Created != 2 {
		t.Fatalf("expected 2 created, got %d", result.Created)
	}
	if result.Skipped != 1 || len(result.Errors) != 1 {
		t.Fatalf("expected 1 skipped row, got %d (%v)", result.Skipped, result.Errors)
	}

	// Category falls back when missing
	var item domain.WarehouseItem
	if err := db.Where("name = ?", "Патч-корд").First(&item).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if item.Category != "Прочее" {
		t.Fatalf("expected fallback category, got %s", item.Category)
	}
	if item.Status != domain.StatusInStock || item.Unit != domain.DefaultUnit {
		t.Fatalf("expected in_stock/%s defaults, got %s/%s", domain.DefaultUnit, item.Status, item.Unit)
	}

	var logs []movement.MovementLog
	if err := db.Where("action = ?", "Импортировано из Excel").Find(&logs).Error; err != nil {
		t.Fatalf("load movements: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one aggregated movement, got %d", len(logs))
	}
}

func TestImportRejectsUnknownHeaders(t *testing.T) {
	_, handler := setupImport(t)

	reader := &sliceReader{rows: [][]string{
		{"Colonne", "Inconnue"},
		{"a", "b"},
	}}

	_, err := handler.Handle(context.Background(), ImportItemsCommand{Actor: "admin@local", Reader: reader})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

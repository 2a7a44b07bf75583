package command

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	equipment "equiptrack/internal/equipment/domain"
	equipmentrepo "equiptrack/internal/equipment/repository"
	movement "equiptrack/internal/movement/domain"
	movementrepo "equiptrack/internal/movement/repository"
)

type sliceReader struct {
	rows [][]string
}

func (r *sliceReader) Rows() ([][]string, error) {
	return r.rows, nil
}

func setupImport(t *testing.T) (*gorm.DB, *equipmentrepo.GormEquipmentRepository, *ImportEquipmentHandler) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&equipment.Equipment{}, &movement.MovementLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := equipmentrepo.NewGormEquipmentRepository(db)
	recorder := movement.NewRecorder(movementrepo.NewGormMovementRepository(db))
	return db, repo, NewImportEquipmentHandler(repo, recorder)
}

func TestImportMatchesBySerialThenInventory(t *testing.T) {
	_, repo, handler := setupImport(t)

	serial := "SN-100"
	inv := "INV-200"
	existing := &equipment.Equipment{
		Name:            "Ноутбук",
		Category:        "Техника",
		SerialNumber:    &serial,
		InventoryNumber: &inv,
		Status:          equipment.StatusInUse,
		Location:        "Кабинет 1",
	}
	if err := repo.Create(existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	reader := &sliceReader{rows: [][]string{
		{"Наименование", "Категория", "Серийный номер", "Инвентарный номер", "Местоположение"},
		{"Ноутбук Dell", "Техника", "SN-100", "", "Кабинет 5"},
		{"Принтер", "Техника", "", "INV-999", ""},
	}}

	result, err := handler.Handle(context.Background(), ImportEquipmentCommand{Actor: "admin@local", Reader: reader})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Updated != 1 || result.Created != 1 || result.ErrorsCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	got, err := repo.FindBySerialNumber("SN-100")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.ID != existing.ID {
		t.Fatalf("serial match created a new row")
	}
	if got.Name != "Ноутбук Dell" || got.Location != "Кабинет 5" {
		t.Fatalf("row not overwritten: %s / %s", got.Name, got.Location)
	}
	// An empty cell leaves the stored value alone
	if got.InventoryNumber == nil || *got.InventoryNumber != "INV-200" {
		t.Fatalf("empty cell clobbered inventory number: %v", got.InventoryNumber)
	}
}

func TestImportReportsBadRows(t *testing.T) {
	db, _, handler := setupImport(t)

	reader := &sliceReader{rows: [][]string{
		{"Наименование", "Категория"},
		{"", "Техника"},
		{"Монитор", ""},
		{"Монитор", "Техника"},
	}}

	result, err := handler.Handle(context.Background(), ImportEquipmentCommand{Actor: "admin@local", Reader: reader})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Created != 1 || result.ErrorsCount != 2 || len(result.Errors) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}

	var logs []movement.MovementLog
	if err := db.Where("action = ?", "Импортировано из Excel").Find(&logs).Error; err != nil {
		t.Fatalf("load movements: %v", err)
	}
	if len(logs) != 1 || logs[0].Quantity != 1 {
		t.Fatalf("expected one aggregated movement for 1 created row, got %+v", logs)
	}
}

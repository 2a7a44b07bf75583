package repository

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	equipment "equiptrack/internal/equipment/domain"
	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/warehouse/domain"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.WarehouseItem{}, &equipment.Equipment{}, &movement.MovementLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedStock(t *testing.T, db *gorm.DB, item domain.WarehouseItem) domain.WarehouseItem {
	if item.Unit == "" {
		item.Unit = domain.DefaultUnit
	}
	if item.Status == "" {
		item.Status = domain.StatusInStock
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
	return item
}

func TestTransferPartialWithSerial(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormWarehouseRepository(db)

	src := seedStock(t, db, domain.WarehouseItem{
		Name: "Ноутбук", Category: "Ноутбуки", Model: "X1", SerialNumber: "SN-100", Quantity: 5,
	})

	result, err := repo.TransferToInventory(domain.TransferRequest{
		Actor:           "admin@local",
		SourceID:        src.ID,
		Qty:             3,
		InventoryNumber: "INV-5001",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if len(result.Created) != 3 {
		t.Fatalf("expected 3 created units, got %d", len(result.Created))
	}
	if result.Remaining != 2 {
		t.Fatalf("expected 2 remaining, got %d", result.Remaining)
	}

	first := result.Created[0]
	if first.InventoryNumber == nil || *first.InventoryNumber != "INV-5001" {
		t.Fatalf("expected first unit to carry the requested inventory number")
	}
	if first.SerialNumber == nil || *first.SerialNumber != "SN-100" {
		t.Fatalf("expected serial on the first unit")
	}

	seen := map[string]bool{}
	serials := 0
	for _, unit := range result.Created {
		if unit.InventoryNumber == nil {
			t.Fatalf("expected every unit to have an inventory number")
		}
		if seen[*unit.InventoryNumber] {
			t.Fatalf("duplicate inventory number %s", *unit.InventoryNumber)
		}
		seen[*unit.InventoryNumber] = true
		if unit.SerialNumber != nil {
			serials++
		}
		if unit.Status != equipment.StatusInUse {
			t.Fatalf("expected in_use status, got %s", unit.Status)
		}
	}
	if serials != 1 {
		t.Fatalf("expected exactly one unit with a serial, got %d", serials)
	}

	var after domain.WarehouseItem
	if err := db.First(&after, src.ID).Error; err != nil {
		t.Fatalf("reload source: %v", err)
	}
	if after.Quantity != 2 || after.Status != domain.StatusIssued {
		t.Fatalf("expected source 2/issued, got %d/%s", after.Quantity, after.Status)
	}

	var logs []movement.MovementLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("load movements: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one movement entry, got %d", len(logs))
	}
	if logs[0].Action != "Перенос в инвентаризацию" || logs[0].Quantity != 3 {
		t.Fatalf("unexpected movement entry: %s qty %d", logs[0].Action, logs[0].Quantity)
	}
}

func TestTransferFullArchivesSource(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormWarehouseRepository(db)

	src := seedStock(t, db, domain.WarehouseItem{Name: "Мышь", Category: "Периферия", Quantity: 2})

	result, err := repo.TransferToInventory(domain.TransferRequest{Actor: "admin@local", SourceID: src.ID, Qty: 2})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if len(result.Created) != 2 || result.Remaining != 0 {
		t.Fatalf("expected full transfer, got %d created %d remaining", len(result.Created), result.Remaining)
	}

	var after domain.WarehouseItem
	if err := db.First(&after, src.ID).Error; err != nil {
		t.Fatalf("reload source: %v", err)
	}
	if after.Quantity != 0 || after.Status != domain.StatusArchived {
		t.Fatalf("expected 0/archived, got %d/%s", after.Quantity, after.Status)
	}
}

func TestTransferClampsQtyToSource(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormWarehouseRepository(db)

	src := seedStock(t, db, domain.WarehouseItem{Name: "Кабель", Category: "Сеть", Quantity: 2})

	result, err := repo.TransferToInventory(domain.TransferRequest{Actor: "admin@local", SourceID: src.ID, Qty: 10})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected clamp to 2, got %d", len(result.Created))
	}
}

func TestTransferUnknownSource(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormWarehouseRepository(db)

	if _, err := repo.TransferToInventory(domain.TransferRequest{SourceID: 999, Qty: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransferSkipsTakenSerial(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormWarehouseRepository(db)

	serial := "SN-DUP"
	if err := db.Create(&equipment.Equipment{Name: "Старый", Category: "Сеть", SerialNumber: &serial}).Error; err != nil {
		t.Fatalf("seed equipment: %v", err)
	}
	src := seedStock(t, db, domain.WarehouseItem{Name: "Новый", Category: "Сеть", SerialNumber: "SN-DUP", Quantity: 1})

	result, err := repo.TransferToInventory(domain.TransferRequest{Actor: "admin@local", SourceID: src.ID, Qty: 1})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if result.Created[0].SerialNumber != nil {
		t.Fatalf("expected serial to stay behind when already taken")
	}
}

func TestMergeOrCreateSumsQuantity(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormWarehouseRepository(db)

	first := domain.WarehouseItem{Name: "Logitech K120", Category: "Периферия", Model: "K120", Quantity: 3}
	merged, _, err := repo.MergeOrCreate(&first)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if merged {
		t.Fatalf("first insert must not merge")
	}

	second := domain.WarehouseItem{Name: "logitech k120", Category: "Периферия", Model: "k120", Quantity: 2}
	merged, result, err := repo.MergeOrCreate(&second)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !merged {
		t.Fatalf("expected merge into the existing row")
	}
	if result.Quantity != 5 {
		t.Fatalf("expected summed quantity 5, got %d", result.Quantity)
	}

	var count int64
	if err := db.Model(&domain.WarehouseItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row, got %d", count)
	}
}

func TestMergeIgnoresNonStockRows(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormWarehouseRepository(db)

	seedStock(t, db, domain.WarehouseItem{Name: "HP M428", Category: "Оргтехника", Model: "P1", Quantity: 1, Status: domain.StatusArchived})

	item := domain.WarehouseItem{Name: "HP M428", Category: "Оргтехника", Model: "P1", Quantity: 1}
	merged, _, err := repo.MergeOrCreate(&item)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if merged {
		t.Fatalf("archived rows must not absorb new stock")
	}
}

func TestReturnToStockMergesAndCreates(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormWarehouseRepository(db)

	unit := &equipment.Equipment{Name: "LG 24MK600", Category: "Мониторы", Model: "M24"}

	merged, rowID, err := repo.ReturnToStock(unit)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if merged || rowID == 0 {
		t.Fatalf("expected a fresh stock line")
	}

	merged, sameID, err := repo.ReturnToStock(unit)
	if err != nil {
		t.Fatalf("second return: %v", err)
	}
	if !merged || sameID != rowID {
		t.Fatalf("expected merge into row %d, got merged=%v id=%d", rowID, merged, sameID)
	}

	var row domain.WarehouseItem
	if err := db.First(&row, rowID).Error; err != nil {
		t.Fatalf("reload row: %v", err)
	}
	if row.Quantity != 2 {
		t.Fatalf("expected quantity 2 after merge, got %d", row.Quantity)
	}
}

func TestListHidesArchivedByDefault(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormWarehouseRepository(db)

	seedStock(t, db, domain.WarehouseItem{Name: "Активный", Category: "Сеть", Quantity: 1})
	seedStock(t, db, domain.WarehouseItem{Name: "Архивный", Category: "Сеть", Quantity: 0, Status: domain.StatusArchived})

	items, err := repo.List(domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Активный" {
		t.Fatalf("expected only the active row, got %d rows", len(items))
	}

	all, err := repo.List(domain.ListFilter{Status: "all"})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both rows with status=all, got %d", len(all))
	}
}

package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equiptrack/internal/equipment/domain"
	equipmentrepo "equiptrack/internal/equipment/repository"
	movement "equiptrack/internal/movement/domain"
	movementrepo "equiptrack/internal/movement/repository"
	warehousedom "equiptrack/internal/warehouse/domain"
	warehouserepo "equiptrack/internal/warehouse/repository"
)

type fixture struct {
	db      *gorm.DB
	handler *UpdateEquipmentHandler
	repo    *equipmentrepo.GormEquipmentRepository
}

func setup(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Equipment{}, &warehousedom.WarehouseItem{}, &movement.MovementLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := equipmentrepo.NewGormEquipmentRepository(db)
	warehouse := warehouserepo.NewGormWarehouseRepository(db)
	recorder := movement.NewRecorder(movementrepo.NewGormMovementRepository(db))

	return &fixture{
		db:      db,
		handler: NewUpdateEquipmentHandler(repo, warehouse, recorder),
		repo:    repo,
	}
}

func seed(t *testing.T, f *fixture, item domain.Equipment) domain.Equipment {
	if err := f.repo.Create(&item); err != nil {
		t.Fatalf("seed equipment: %v", err)
	}
	return item
}

func strPtr(s string) *string { return &s }

func TestUpdateToInStockMirrorsToWarehouse(t *testing.T) {
	f := setup(t)
	item := seed(t, f, domain.Equipment{Name: "Dell XPS", Category: "Ноутбуки", Model: "9500", Status: domain.StatusInUse})

	status := domain.StatusInStock
	updated, err := f.handler.Handle(context.Background(), UpdateEquipmentCommand{
		Actor: "admin@local",
		ID:    item.ID,
		Patch: domain.Patch{Status: &status},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusInStock {
		t.Fatalf("expected in_stock, got %s", updated.Status)
	}

	var rows []warehousedom.WarehouseItem
	if err := f.db.Find(&rows).Error; err != nil {
		t.Fatalf("load warehouse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one mirrored stock line, got %d", len(rows))
	}
	if rows[0].Name != "Dell XPS" || rows[0].Quantity != 1 || rows[0].Status != warehousedom.StatusInStock {
		t.Fatalf("unexpected mirrored row: %+v", rows[0])
	}

	var logs []movement.MovementLog
	if err := f.db.Where("action LIKE ?", "Возврат на склад%").Find(&logs).Error; err != nil {
		t.Fatalf("load movements: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one return movement, got %d", len(logs))
	}
	if logs[0].FromTable != movement.TableInventory || logs[0].ToTable != movement.TableWarehouse {
		t.Fatalf("unexpected movement direction: %s -> %s", logs[0].FromTable, logs[0].ToTable)
	}
}

func TestUpdateWithoutStatusChangeDoesNotMirror(t *testing.T) {
	f := setup(t)
	item := seed(t, f, domain.Equipment{Name: "Dell XPS", Category: "Ноутбуки", Status: domain.StatusInUse})

	location := "Кабинет 105"
	if _, err := f.handler.Handle(context.Background(), UpdateEquipmentCommand{
		Actor: "admin@local",
		ID:    item.ID,
		Patch: domain.Patch{Location: &location},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var count int64
	if err := f.db.Model(&warehousedom.WarehouseItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count warehouse: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no mirrored rows, got %d", count)
	}
}

func TestUpdateLogsStatusChange(t *testing.T) {
	f := setup(t)
	item := seed(t, f, domain.Equipment{Name: "Проектор", Category: "Презентационное", Status: domain.StatusInUse})

	status := domain.StatusInRepair
	if _, err := f.handler.Handle(context.Background(), UpdateEquipmentCommand{
		Actor: "editor@local",
		ID:    item.ID,
		Patch: domain.Patch{Status: &status},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var logs []movement.MovementLog
	if err := f.db.Where("action = ?", "Изменение статуса").Find(&logs).Error; err != nil {
		t.Fatalf("load movements: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one status movement, got %d", len(logs))
	}
	if logs[0].User != "editor@local" {
		t.Fatalf("expected actor recorded, got %s", logs[0].User)
	}
}

func TestUpdateClearsSerialWithEmptyString(t *testing.T) {
	f := setup(t)
	item := seed(t, f, domain.Equipment{Name: "Сканер", Category: "Оргтехника", SerialNumber: strPtr("SN-9"), Status: domain.StatusInUse})

	empty := ""
	updated, err := f.handler.Handle(context.Background(), UpdateEquipmentCommand{
		Actor: "admin@local",
		ID:    item.ID,
		Patch: domain.Patch{SerialNumber: &empty},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SerialNumber != nil {
		t.Fatalf("expected serial cleared to NULL, got %q", *updated.SerialNumber)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	f := setup(t)
	item := seed(t, f, domain.Equipment{Name: "ИБП", Category: "Электропитание", Status: domain.StatusInUse})

	status := "lost"
	_, err := f.handler.Handle(context.Background(), UpdateEquipmentCommand{
		Actor: "admin@local",
		ID:    item.ID,
		Patch: domain.Patch{Status: &status},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateMissingEquipment(t *testing.T) {
	f := setup(t)

	name := "Ничего"
	_, err := f.handler.Handle(context.Background(), UpdateEquipmentCommand{
		Actor: "admin@local",
		ID:    404,
		Patch: domain.Patch{Name: &name},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package repository

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equiptrack/internal/equipment/domain"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Equipment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func TestCreateDuplicateSerialIsConflict(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormEquipmentRepository(db)

	first := domain.Equipment{Name: "Ноутбук", Category: "Ноутбуки", SerialNumber: strPtr("SN-1"), Status: domain.StatusInUse}
	if err := repo.Create(&first); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := domain.Equipment{Name: "Другой", Category: "Ноутбуки", SerialNumber: strPtr("SN-1"), Status: domain.StatusInUse}
	if err := repo.Create(&dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateAllowsManyNilSerials(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormEquipmentRepository(db)

	for i := 0; i < 3; i++ {
		item := domain.Equipment{Name: fmt.Sprintf("Без номера %d", i), Category: "Прочее", Status: domain.StatusInUse}
		if err := repo.Create(&item); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
}

func TestListDefaultFilter(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormEquipmentRepository(db)

	visible := domain.Equipment{Name: "Видимый", Category: "Сеть", InventoryNumber: strPtr("INV-1"), Status: domain.StatusInUse}
	stocked := domain.Equipment{Name: "Складской", Category: "Сеть", InventoryNumber: strPtr("INV-2"), Status: domain.StatusInStock}
	hidden := domain.Equipment{Name: "Скрытый", Category: "Сеть", Status: domain.StatusInUse}
	for _, item := range []*domain.Equipment{&visible, &stocked, &hidden} {
		if err := repo.Create(item); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, total, err := repo.List(domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "Видимый" {
		t.Fatalf("expected only the visible row, got %d rows total %d", len(items), total)
	}

	// Explicit status filter disables the in_stock exclusion
	items, _, err = repo.List(domain.ListFilter{Status: domain.StatusInStock})
	if err != nil {
		t.Fatalf("list in_stock: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Складской" {
		t.Fatalf("expected the stocked row, got %d rows", len(items))
	}

	// Full visibility for exports
	items, _, err = repo.List(domain.ListFilter{IncludeHidden: true, AllStatuses: true, Unlimited: true})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected all 3 rows, got %d", len(items))
	}
}

func TestListSearchAcrossColumns(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormEquipmentRepository(db)

	item := domain.Equipment{Name: "Сервер HP DL380", Category: "Серверы", InventoryNumber: strPtr("INV-7"), Responsible: "Ivanov", Status: domain.StatusInUse}
	if err := repo.Create(&item); err != nil {
		t.Fatalf("seed: %v", err)
	}

	for _, q := range []string{"dl380", "ivanov", "inv-7"} {
		items, _, err := repo.List(domain.ListFilter{Query: q})
		if err != nil {
			t.Fatalf("list %q: %v", q, err)
		}
		if len(items) != 1 {
			t.Fatalf("query %q: expected 1 match, got %d", q, len(items))
		}
	}
}

func TestListClampsLimit(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormEquipmentRepository(db)

	for i := 0; i < 30; i++ {
		item := domain.Equipment{
			Name:            fmt.Sprintf("Единица %d", i),
			Category:        "Прочее",
			InventoryNumber: strPtr(fmt.Sprintf("INV-L%d", i)),
			Status:          domain.StatusInUse,
		}
		if err := repo.Create(&item); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	items, total, err := repo.List(domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 30 {
		t.Fatalf("expected total 30, got %d", total)
	}
	if len(items) != 25 {
		t.Fatalf("expected default page of 25, got %d", len(items))
	}
}

func TestDeleteMissingRow(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewGormEquipmentRepository(db)

	if err := repo.Delete(42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

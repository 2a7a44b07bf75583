package repository

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equiptrack/internal/movement/domain"
)

func setupMovements(t *testing.T) *GormMovementRepository {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.MovementLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormMovementRepository(db)
}

func TestRecordFillsDefaults(t *testing.T) {
	repo := setupMovements(t)

	entry := &domain.MovementLog{User: "admin@local", Action: "Передача", ItemName: "Laptop"}
	if err := repo.Record(entry); err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.Datetime.IsZero() {
		t.Fatal("datetime not defaulted")
	}
	if entry.Quantity != 1 {
		t.Fatalf("quantity not defaulted, got %d", entry.Quantity)
	}
}

func TestFindFiltersAndOrders(t *testing.T) {
	repo := setupMovements(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.MovementLog{
		{Datetime: base, User: "admin@local", Action: "Transfer", ItemName: "Laptop A", Quantity: 1},
		{Datetime: base.Add(time.Hour), User: "editor@local", Action: "Transfer", ItemName: "Laptop B", Quantity: 2},
		{Datetime: base.Add(2 * time.Hour), User: "editor@local", Action: "Status change", ItemName: "Laptop A", Quantity: 1},
	}
	for i := range entries {
		if err := repo.Record(&entries[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := repo.Find(domain.Filter{User: "EDITOR"})
	if err != nil {
		t.Fatalf("find by user: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 editor entries, got %d", len(got))
	}
	if !got[0].Datetime.After(got[1].Datetime) {
		t.Fatal("entries not ordered newest first")
	}

	got, err = repo.Find(domain.Filter{Action: "transfer", ItemName: "laptop a"})
	if err != nil {
		t.Fatalf("find by action: %v", err)
	}
	if len(got) != 1 || got[0].User != "admin@local" {
		t.Fatalf("unexpected match: %+v", got)
	}

	from := base.Add(90 * time.Minute)
	got, err = repo.Find(domain.Filter{From: &from})
	if err != nil {
		t.Fatalf("find by date: %v", err)
	}
	if len(got) != 1 || got[0].Action != "Status change" {
		t.Fatalf("date filter mismatch: %+v", got)
	}
}

func TestFindClampsLimit(t *testing.T) {
	repo := setupMovements(t)

	for i := 0; i < 5; i++ {
		entry := domain.MovementLog{User: "admin@local", Action: "Transfer", ItemName: fmt.Sprintf("Item %d", i)}
		if err := repo.Record(&entry); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := repo.Find(domain.Filter{Limit: 2})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit 2, got %d", len(got))
	}

	got, err = repo.Find(domain.Filter{Limit: -1})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected default limit to return all 5, got %d", len(got))
	}
}

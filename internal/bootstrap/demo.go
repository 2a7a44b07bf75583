package bootstrap

import (
	"fmt"
	"math/rand"
	"time"

	equipment "equiptrack/internal/equipment/domain"
	warehouse "equiptrack/internal/warehouse/domain"
)

// DemoResult reports what the demo seed inserted
type DemoResult struct {
	Equipment int `json:"equipment"`
	Warehouse int `json:"warehouse"`
}

var demoCategories = []string{"Ноутбуки", "Мониторы", "Компьютеры", "Оргтехника", "Сеть", "Связь"}
var demoLocations = []string{"Кабинет 101", "Кабинет 102", "Кабинет 103", "Серверная", "Приёмная", "Склад"}
var demoStatuses = []string{
	equipment.StatusInUse, equipment.StatusInUse, equipment.StatusInUse,
	equipment.StatusInRepair, equipment.StatusToWriteoff,
}

// SeedDemo inserts a randomized demo dataset for showcases and load testing
func (s *Seeder) SeedDemo() (*DemoResult, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	result := &DemoResult{}
	now := time.Now()

	for i := 0; i < 30; i++ {
		inv := fmt.Sprintf("INV-%06d", 100000+rng.Intn(900000))
		if _, err := s.equipment.FindByInventoryNumber(inv); err == nil {
			continue
		}
		cost := float64(15000 + rng.Intn(120000))
		purchase := now.AddDate(0, -rng.Intn(36), 0)
		item := equipment.Equipment{
			Name:            fmt.Sprintf("Демо-оборудование %d", i+1),
			Category:        demoCategories[rng.Intn(len(demoCategories))],
			InventoryNumber: &inv,
			PurchaseDate:    &purchase,
			Cost:            &cost,
			Location:        demoLocations[rng.Intn(len(demoLocations))],
			Responsible:     fmt.Sprintf("Сотрудник %d", rng.Intn(10)+1),
			Status:          demoStatuses[rng.Intn(len(demoStatuses))],
		}
		if err := s.equipment.Create(&item); err != nil {
			return nil, fmt.Errorf("failed to seed demo equipment: %w", err)
		}
		result.Equipment++
	}

	for i := 0; i < 20; i++ {
		cost := float64(500 + rng.Intn(50000))
		received := now.AddDate(0, 0, -rng.Intn(180))
		item := warehouse.WarehouseItem{
			Name:         fmt.Sprintf("Демо-запас %d", i+1),
			Category:     demoCategories[rng.Intn(len(demoCategories))],
			Quantity:     rng.Intn(20) + 1,
			Unit:         warehouse.DefaultUnit,
			UnitCost:     &cost,
			DateReceived: &received,
			Supplier:     fmt.Sprintf("Поставщик %d", rng.Intn(5)+1),
			Status:       warehouse.StatusInStock,
			Location:     "Склад",
		}
		if _, _, err := s.warehouse.MergeOrCreate(&item); err != nil {
			return nil, fmt.Errorf("failed to seed demo warehouse: %w", err)
		}
		result.Warehouse++
	}

	return result, nil
}

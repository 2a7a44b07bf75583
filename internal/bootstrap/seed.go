package bootstrap

import (
	"fmt"
	"time"

	"equiptrack/internal/config"
	equipment "equiptrack/internal/equipment/domain"
	userdom "equiptrack/internal/user/domain"
	warehouse "equiptrack/internal/warehouse/domain"
	"equiptrack/pkg/auth"
	"equiptrack/pkg/logger"
)

// Seeder provisions the baseline records a fresh deployment needs. Every
// seed is idempotent: existing records short-circuit by their unique key.
type Seeder struct {
	users     userdom.Repository
	equipment equipment.Repository
	warehouse warehouse.Repository
}

// NewSeeder creates a new seeder
func NewSeeder(users userdom.Repository, equipmentRepo equipment.Repository, warehouseRepo warehouse.Repository) *Seeder {
	return &Seeder{users: users, equipment: equipmentRepo, warehouse: warehouseRepo}
}

// Run applies all startup seeds
func (s *Seeder) Run(cfg *config.Config) error {
	if err := s.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		return err
	}
	if err := s.seedSampleUsers(); err != nil {
		return err
	}
	return s.seedSampleEquipment()
}

// SeedAdmin ensures the administrator account exists
func (s *Seeder) SeedAdmin(email, password, name string) error {
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &userdom.User{
		Email:    email,
		Name:     name,
		Password: hashed,
		Role:     userdom.RoleAdmin,
	}
	if err := s.users.Create(admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	logger.Logger.Info().Str("email", email).Msg("Admin account seeded")
	return nil
}

func (s *Seeder) seedSampleUsers() error {
	samples := []struct {
		email, name, role string
	}{
		{"trr@local", "trr", userdom.RoleEditor},
		{"sdu@local", "sdu", userdom.RoleViewer},
	}

	for _, sample := range samples {
		if _, err := s.users.FindByEmail(sample.email); err == nil {
			continue
		}
		hashed, err := auth.HashPassword(sample.name)
		if err != nil {
			return fmt.Errorf("failed to hash sample password: %w", err)
		}
		user := &userdom.User{
			Email:    sample.email,
			Name:     sample.name,
			Password: hashed,
			Role:     sample.role,
		}
		if err := s.users.Create(user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", sample.email, err)
		}
	}
	return nil
}

// sampleEquipment are the starter records of a fresh install
var sampleEquipment = []equipment.Equipment{
	{Name: "Ноутбук Dell Latitude 5520", Category: "Ноутбуки", Manufacturer: "Dell", Model: "Latitude 5520", Location: "Кабинет 101", Responsible: "Иванов И.И.", Status: equipment.StatusInUse},
	{Name: "Монитор LG 24MK600", Category: "Мониторы", Manufacturer: "LG", Model: "24MK600", Location: "Кабинет 101", Responsible: "Иванов И.И.", Status: equipment.StatusInUse},
	{Name: "МФУ HP LaserJet M428", Category: "Оргтехника", Manufacturer: "HP", Model: "LaserJet Pro M428", Location: "Приёмная", Responsible: "Петрова А.С.", Status: equipment.StatusInUse},
	{Name: "Системный блок DEPO Neos", Category: "Компьютеры", Manufacturer: "DEPO", Model: "Neos 460", Location: "Кабинет 102", Responsible: "Сидоров П.П.", Status: equipment.StatusInUse},
	{Name: "ИБП APC Back-UPS 650", Category: "Электропитание", Manufacturer: "APC", Model: "BX650CI", Location: "Серверная", Responsible: "Сидоров П.П.", Status: equipment.StatusInUse},
	{Name: "Коммутатор D-Link DGS-1016", Category: "Сеть", Manufacturer: "D-Link", Model: "DGS-1016A", Location: "Серверная", Responsible: "Сидоров П.П.", Status: equipment.StatusInUse},
	{Name: "Проектор Epson EB-X05", Category: "Презентационное", Manufacturer: "Epson", Model: "EB-X05", Location: "Конференц-зал", Responsible: "Петрова А.С.", Status: equipment.StatusInRepair},
	{Name: "Ноутбук HP ProBook 450", Category: "Ноутбуки", Manufacturer: "HP", Model: "ProBook 450 G8", Location: "Кабинет 103", Responsible: "Кузнецова Е.В.", Status: equipment.StatusInUse},
	{Name: "Телефон IP Yealink T31", Category: "Связь", Manufacturer: "Yealink", Model: "SIP-T31", Location: "Приёмная", Responsible: "Петрова А.С.", Status: equipment.StatusInUse},
	{Name: "Сканер Canon LiDE 400", Category: "Оргтехника", Manufacturer: "Canon", Model: "CanoScan LiDE 400", Location: "Кабинет 102", Responsible: "Кузнецова Е.В.", Status: equipment.StatusToWriteoff},
}

func (s *Seeder) seedSampleEquipment() error {
	now := time.Now()
	for i, sample := range sampleEquipment {
		inv := fmt.Sprintf("INV-%04d", 1001+i)
		if _, err := s.equipment.FindByInventoryNumber(inv); err == nil {
			continue
		}
		item := sample
		item.InventoryNumber = &inv
		purchase := now.AddDate(-1, -i, 0)
		item.PurchaseDate = &purchase
		if err := s.equipment.Create(&item); err != nil {
			return fmt.Errorf("failed to seed equipment %s: %w", item.Name, err)
		}
	}
	return nil
}

package command

import (
	"context"
	"fmt"
	"time"

	"equiptrack/internal/equipment/domain"
	movement "equiptrack/internal/movement/domain"
)

// CreateEquipmentCommand represents the command to create an equipment record
type CreateEquipmentCommand struct {
	Actor string
	Item  domain.Equipment
}

// CreateEquipmentHandler handles equipment creation
type CreateEquipmentHandler struct {
	repo      domain.Repository
	movements *movement.Recorder
}

// NewCreateEquipmentHandler creates a new create equipment handler
func NewCreateEquipmentHandler(repo domain.Repository, movements *movement.Recorder) *CreateEquipmentHandler {
	return &CreateEquipmentHandler{repo: repo, movements: movements}
}

// Handle executes the create equipment command
func (h *CreateEquipmentHandler) Handle(ctx context.Context, cmd CreateEquipmentCommand) (*domain.Equipment, error) {
	item := cmd.Item
	if err := validate(&item); err != nil {
		return nil, err
	}
	if item.Status == "" {
		item.Status = domain.StatusInUse
	}

	if err := h.repo.Create(&item); err != nil {
		return nil, err
	}

	h.movements.Try(movement.MovementLog{
		User:     cmd.Actor,
		Action:   "Добавлено в инвентаризацию",
		ItemName: item.Name,
		Quantity: 1,
		ToTable:  movement.TableInventory,
		Note:     fmt.Sprintf("Оборудование ID %d", item.ID),
	}).Log(ctx)

	return &item, nil
}

func validate(item *domain.Equipment) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if item.Category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if item.Status != "" && !domain.ValidStatus(item.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, item.Status)
	}
	if item.Cost != nil && *item.Cost < 0 {
		return fmt.Errorf("%w: cost must be non-negative", domain.ErrValidation)
	}
	if item.PurchaseDate != nil && item.PurchaseDate.After(time.Now()) {
		return fmt.Errorf("%w: purchaseDate cannot be in the future", domain.ErrValidation)
	}
	return nil
}

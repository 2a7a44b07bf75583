package command

import (
	"context"
	"fmt"

	"equiptrack/internal/equipment/domain"
	movement "equiptrack/internal/movement/domain"
)

// DeleteEquipmentCommand represents the command to delete an equipment record
type DeleteEquipmentCommand struct {
	Actor string
	ID    uint
}

// DeleteEquipmentHandler handles equipment deletion
type DeleteEquipmentHandler struct {
	repo      domain.Repository
	movements *movement.Recorder
}

// NewDeleteEquipmentHandler creates a new delete equipment handler
func NewDeleteEquipmentHandler(repo domain.Repository, movements *movement.Recorder) *DeleteEquipmentHandler {
	return &DeleteEquipmentHandler{repo: repo, movements: movements}
}

// Handle executes the delete equipment command
func (h *DeleteEquipmentHandler) Handle(ctx context.Context, cmd DeleteEquipmentCommand) error {
	before, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return err
	}

	h.movements.Try(movement.MovementLog{
		User:      cmd.Actor,
		Action:    "Удалено из инвентаризации",
		ItemName:  before.Name,
		Quantity:  1,
		FromTable: movement.TableInventory,
		Note:      fmt.Sprintf("Оборудование ID %d", cmd.ID),
	}).Log(ctx)

	return nil
}

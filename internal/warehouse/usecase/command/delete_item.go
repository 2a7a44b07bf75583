package command

import (
	"context"

	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/warehouse/domain"
)

// DeleteItemCommand represents the command to delete a stock line
type DeleteItemCommand struct {
	Actor string
	ID    uint
}

// DeleteItemHandler handles warehouse deletion
type DeleteItemHandler struct {
	repo      domain.Repository
	movements *movement.Recorder
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(repo domain.Repository, movements *movement.Recorder) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo, movements: movements}
}

// Handle executes the delete item command
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	before, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return err
	}

	h.movements.Try(movement.MovementLog{
		User:      cmd.Actor,
		Action:    "Удалено со склада",
		ItemName:  before.Name,
		Quantity:  before.Quantity,
		FromTable: movement.TableWarehouse,
		Note:      before.Note,
	}).Log(ctx)

	return nil
}

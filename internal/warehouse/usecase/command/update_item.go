package command

import (
	"context"
	"fmt"
	"time"

	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/warehouse/domain"
)

// ItemPatch is an explicit partial update of a warehouse row
type ItemPatch struct {
	Name         *string
	Category     *string
	Model        *string
	Manufacturer *string
	SerialNumber *string
	Quantity     *int
	Unit         *string
	UnitCost     *float64
	DateReceived *time.Time
	Supplier     *string
	Status       *string
	Location     *string
	Note         *string
}

// UpdateItemCommand represents the command to update a stock line
type UpdateItemCommand struct {
	Actor string
	ID    uint
	Patch ItemPatch
}

// UpdateItemHandler handles warehouse updates
type UpdateItemHandler struct {
	repo      domain.Repository
	movements *movement.Recorder
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.Repository, movements *movement.Recorder) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo, movements: movements}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.WarehouseItem, error) {
	before, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	item := *before
	applyItemPatch(&item, cmd.Patch)
	if item.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", domain.ErrValidation)
	}

	if err := h.repo.Update(&item); err != nil {
		return nil, err
	}

	h.movements.Try(movement.MovementLog{
		User:      cmd.Actor,
		Action:    "Обновление на складе",
		ItemName:  item.Name,
		Quantity:  item.Quantity,
		FromTable: movement.TableWarehouse,
		ToTable:   movement.TableWarehouse,
		Note:      fmt.Sprintf("Было: %d; Стало: %d", before.Quantity, item.Quantity),
	}).Log(ctx)

	return &item, nil
}

func applyItemPatch(item *domain.WarehouseItem, p ItemPatch) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Model != nil {
		item.Model = *p.Model
	}
	if p.Manufacturer != nil {
		item.Manufacturer = *p.Manufacturer
	}
	if p.SerialNumber != nil {
		item.SerialNumber = *p.SerialNumber
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.UnitCost != nil {
		item.UnitCost = p.UnitCost
	}
	if p.DateReceived != nil {
		item.DateReceived = p.DateReceived
	}
	if p.Supplier != nil {
		item.Supplier = *p.Supplier
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.Note != nil {
		item.Note = *p.Note
	}
}

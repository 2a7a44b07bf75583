package command

import (
	"context"
	"fmt"

	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/warehouse/domain"
)

// CreateItemCommand represents the command to add a stock line
type CreateItemCommand struct {
	Actor string
	Item  domain.WarehouseItem
}

// CreateItemResult reports whether the line was merged into an existing row
type CreateItemResult struct {
	Item   *domain.WarehouseItem
	Merged bool
}

// CreateItemHandler handles warehouse creation with the merge contract
type CreateItemHandler struct {
	repo      domain.Repository
	movements *movement.Recorder
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(repo domain.Repository, movements *movement.Recorder) *CreateItemHandler {
	return &CreateItemHandler{repo: repo, movements: movements}
}

// Handle executes the create item command
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*CreateItemResult, error) {
	item := cmd.Item
	if item.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if item.Category == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if item.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", domain.ErrValidation)
	}

	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	merged, result, err := h.repo.MergeOrCreate(&item)
	if err != nil {
		return nil, err
	}

	entry := movement.MovementLog{
		User:     cmd.Actor,
		Action:   "Добавлено на складе",
		ItemName: result.Name,
		Quantity: qty,
		ToTable:  movement.TableWarehouse,
		Note:     item.Note,
	}
	if merged {
		entry.Action = "Добавлено (объединено) на складе"
		entry.Note = fmt.Sprintf("В строку ID %d", result.ID)
	}
	h.movements.Try(entry).Log(ctx)

	return &CreateItemResult{Item: result, Merged: merged}, nil
}

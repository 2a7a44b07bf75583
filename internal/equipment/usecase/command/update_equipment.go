package command

import (
	"context"
	"fmt"

	"equiptrack/internal/equipment/domain"
	movement "equiptrack/internal/movement/domain"
)

// WarehouseMirror returns one equipment unit to bulk stock as a best-effort
// side effect of the in_stock status transition. Implemented by the warehouse
// repository; failures must never fail the triggering equipment update.
type WarehouseMirror interface {
	ReturnToStock(item *domain.Equipment) (merged bool, rowID uint, err error)
}

// UpdateEquipmentCommand represents a partial update of an equipment record
type UpdateEquipmentCommand struct {
	Actor string
	ID    uint
	Patch domain.Patch
}

// UpdateEquipmentHandler handles equipment updates and their side effects
type UpdateEquipmentHandler struct {
	repo      domain.Repository
	mirror    WarehouseMirror
	movements *movement.Recorder
}

// NewUpdateEquipmentHandler creates a new update equipment handler
func NewUpdateEquipmentHandler(repo domain.Repository, mirror WarehouseMirror, movements *movement.Recorder) *UpdateEquipmentHandler {
	return &UpdateEquipmentHandler{repo: repo, mirror: mirror, movements: movements}
}

// Handle executes the update. The primary write either fully succeeds or
// fails; the warehouse mirror and change logs run afterwards and are
// fire-and-forget relative to it.
func (h *UpdateEquipmentHandler) Handle(ctx context.Context, cmd UpdateEquipmentCommand) (*domain.Equipment, error) {
	before, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	item := *before
	applyPatch(&item, cmd.Patch)
	if err := validate(&item); err != nil {
		return nil, err
	}

	if err := h.repo.Update(&item); err != nil {
		return nil, err
	}

	becameInStock := cmd.Patch.Status != nil &&
		item.Status == domain.StatusInStock &&
		before.Status != domain.StatusInStock
	if becameInStock {
		h.mirrorToWarehouse(ctx, cmd.Actor, &item)
	}

	h.logChanges(ctx, cmd, before, &item)

	return &item, nil
}

func (h *UpdateEquipmentHandler) mirrorToWarehouse(ctx context.Context, actor string, item *domain.Equipment) {
	merged, rowID, err := h.mirror.ReturnToStock(item)
	if err != nil {
		movement.SideEffect{Action: "mirror to warehouse", Err: err}.Log(ctx)
		return
	}

	action := "Возврат на склад"
	note := fmt.Sprintf("Оборудование ID %d", item.ID)
	if merged {
		action = "Возврат на склад (объединено)"
		note = fmt.Sprintf("В строку склада ID %d; Оборудование ID %d", rowID, item.ID)
	}
	h.movements.Try(movement.MovementLog{
		User:      actor,
		Action:    action,
		ItemName:  item.Name,
		Quantity:  1,
		FromTable: movement.TableInventory,
		ToTable:   movement.TableWarehouse,
		Note:      note,
	}).Log(ctx)
}

// logChanges appends one movement row per significant change, best-effort
func (h *UpdateEquipmentHandler) logChanges(ctx context.Context, cmd UpdateEquipmentCommand, before, after *domain.Equipment) {
	if cmd.Patch.Status != nil && after.Status != before.Status {
		h.movements.Try(movement.MovementLog{
			User:      cmd.Actor,
			Action:    "Изменение статуса",
			ItemName:  after.Name,
			Quantity:  1,
			FromTable: movement.TableInventory,
			ToTable:   movement.TableInventory,
			Note:      fmt.Sprintf("%s → %s", before.Status, after.Status),
		}).Log(ctx)
	}

	if cmd.Patch.TransferTo != nil || cmd.Patch.TransferDate != nil {
		to := after.TransferTo
		if to == "" {
			to = "—"
		}
		date := "—"
		if after.TransferDate != nil {
			date = after.TransferDate.Format("2006-01-02")
		}
		h.movements.Try(movement.MovementLog{
			User:      cmd.Actor,
			Action:    "Передача",
			ItemName:  after.Name,
			Quantity:  1,
			FromTable: movement.TableInventory,
			ToTable:   movement.TableInventory,
			Note:      fmt.Sprintf("Кому: %s; Дата: %s", to, date),
		}).Log(ctx)
	}

	var changes []string
	if cmd.Patch.Location != nil && after.Location != before.Location {
		changes = append(changes, fmt.Sprintf("Местоположение: %s → %s", dash(before.Location), after.Location))
	}
	if cmd.Patch.Responsible != nil && after.Responsible != before.Responsible {
		changes = append(changes, fmt.Sprintf("Ответственный: %s → %s", dash(before.Responsible), after.Responsible))
	}
	if len(changes) > 0 {
		note := changes[0]
		if len(changes) == 2 {
			note = changes[0] + "; " + changes[1]
		}
		h.movements.Try(movement.MovementLog{
			User:      cmd.Actor,
			Action:    "Обновление карточки",
			ItemName:  after.Name,
			Quantity:  1,
			FromTable: movement.TableInventory,
			ToTable:   movement.TableInventory,
			Note:      note,
		}).Log(ctx)
	}
}

func applyPatch(item *domain.Equipment, p domain.Patch) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.SerialNumber != nil {
		item.SerialNumber = nilIfEmpty(*p.SerialNumber)
	}
	if p.InventoryNumber != nil {
		item.InventoryNumber = nilIfEmpty(*p.InventoryNumber)
	}
	if p.PurchaseDate != nil {
		item.PurchaseDate = p.PurchaseDate
	}
	if p.Cost != nil {
		item.Cost = p.Cost
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.Responsible != nil {
		item.Responsible = *p.Responsible
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Manufacturer != nil {
		item.Manufacturer = *p.Manufacturer
	}
	if p.Model != nil {
		item.Model = *p.Model
	}
	if p.Condition != nil {
		item.Condition = *p.Condition
	}
	if p.TransferTo != nil {
		item.TransferTo = *p.TransferTo
	}
	if p.TransferDate != nil {
		item.TransferDate = p.TransferDate
	}
	if p.ReturnDate != nil {
		item.ReturnDate = p.ReturnDate
	}
	if p.Note != nil {
		item.Note = *p.Note
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

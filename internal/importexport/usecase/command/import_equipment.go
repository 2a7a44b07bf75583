package command

import (
	"context"
	"fmt"

	equipment "equiptrack/internal/equipment/domain"
	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/spreadsheet"
)

// ImportEquipmentCommand ingests an equipment spreadsheet
type ImportEquipmentCommand struct {
	Actor  string
	Reader spreadsheet.Reader
}

// ImportEquipmentResult reports the batch outcome
type ImportEquipmentResult struct {
	Created     int      `json:"created"`
	Updated     int      `json:"updated"`
	ErrorsCount int      `json:"errorsCount"`
	Errors      []string `json:"errors"`
}

// ImportEquipmentHandler handles equipment spreadsheet imports. Rows are
// matched to existing records by serial number first, then inventory number;
// matches are updated, the rest inserted.
type ImportEquipmentHandler struct {
	repo      equipment.Repository
	movements *movement.Recorder
}

// NewImportEquipmentHandler creates a new equipment import handler
func NewImportEquipmentHandler(repo equipment.Repository, movements *movement.Recorder) *ImportEquipmentHandler {
	return &ImportEquipmentHandler{repo: repo, movements: movements}
}

// Handle processes the sheet row by row; a bad row is reported, not fatal
func (h *ImportEquipmentHandler) Handle(ctx context.Context, cmd ImportEquipmentCommand) (*ImportEquipmentResult, error) {
	rows, err := cmd.Reader.Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", equipment.ErrValidation, err)
	}

	records, ok := spreadsheet.MapRows(rows)
	if !ok {
		return nil, fmt.Errorf("%w: cannot recognize any headers", equipment.ErrValidation)
	}

	result := &ImportEquipmentResult{Errors: []string{}}
	for i, rec := range records {
		if err := h.importRow(rec, result); err != nil {
			result.ErrorsCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
		}
	}

	h.movements.Try(movement.MovementLog{
		User:     cmd.Actor,
		Action:   "Импортировано из Excel",
		ItemName: "Множественно",
		Quantity: result.Created,
		ToTable:  movement.TableInventory,
		Note:     fmt.Sprintf("Добавлено %d, обновлено %d", result.Created, result.Updated),
	}).Log(ctx)

	return result, nil
}

func (h *ImportEquipmentHandler) importRow(rec spreadsheet.Record, result *ImportEquipmentResult) error {
	name := rec[spreadsheet.FieldName]
	if name == "" {
		return fmt.Errorf("missing required name")
	}
	category := rec[spreadsheet.FieldCategory]
	if category == "" {
		return fmt.Errorf("missing required category")
	}

	existing := h.findExisting(rec)
	if existing != nil {
		applyRecord(existing, rec, name, category)
		if err := h.repo.Update(existing); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	item := &equipment.Equipment{Status: equipment.StatusInUse}
	applyRecord(item, rec, name, category)
	if err := h.repo.Create(item); err != nil {
		return err
	}
	result.Created++
	return nil
}

func (h *ImportEquipmentHandler) findExisting(rec spreadsheet.Record) *equipment.Equipment {
	if serial := rec[spreadsheet.FieldSerialNumber]; serial != "" {
		if item, err := h.repo.FindBySerialNumber(serial); err == nil {
			return item
		}
	}
	if inv := rec[spreadsheet.FieldInventoryNumber]; inv != "" {
		if item, err := h.repo.FindByInventoryNumber(inv); err == nil {
			return item
		}
	}
	return nil
}

// applyRecord overwrites the record's fields with every non-empty cell
func applyRecord(item *equipment.Equipment, rec spreadsheet.Record, name, category string) {
	item.Name = name
	item.Category = category

	if v := rec[spreadsheet.FieldSerialNumber]; v != "" {
		item.SerialNumber = &v
	}
	if v := rec[spreadsheet.FieldInventoryNumber]; v != "" {
		item.InventoryNumber = &v
	}
	if d := spreadsheet.ParseDate(rec[spreadsheet.FieldPurchaseDate]); d != nil {
		item.PurchaseDate = d
	}
	if n := spreadsheet.ParseNumber(rec[spreadsheet.FieldCost]); n != nil {
		item.Cost = n
	}
	if v := rec[spreadsheet.FieldLocation]; v != "" {
		item.Location = v
	}
	if v := rec[spreadsheet.FieldResponsible]; v != "" {
		item.Responsible = v
	}
	if v := rec[spreadsheet.FieldStatus]; v != "" {
		item.Status = spreadsheet.NormalizeStatus(v)
	}
	if v := rec[spreadsheet.FieldManufacturer]; v != "" {
		item.Manufacturer = v
	}
	if v := rec[spreadsheet.FieldModel]; v != "" {
		item.Model = v
	}
	if v := rec[spreadsheet.FieldCondition]; v != "" {
		item.Condition = v
	}
	if v := rec[spreadsheet.FieldTransferTo]; v != "" {
		item.TransferTo = v
	}
	if d := spreadsheet.ParseDate(rec[spreadsheet.FieldTransferDate]); d != nil {
		item.TransferDate = d
	}
	if d := spreadsheet.ParseDate(rec[spreadsheet.FieldReturnDate]); d != nil {
		item.ReturnDate = d
	}
	if v := rec[spreadsheet.FieldNote]; v != "" {
		item.Note = v
	}
}

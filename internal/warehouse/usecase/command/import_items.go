package command

import (
	"context"
	"fmt"

	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/spreadsheet"
	"equiptrack/internal/warehouse/domain"
)

// ImportItemsCommand ingests a warehouse spreadsheet
type ImportItemsCommand struct {
	Actor  string
	Reader spreadsheet.Reader
}

// ImportItemsResult reports the batch outcome
type ImportItemsResult struct {
	Created int      `json:"created"`
	Merged  int      `json:"merged"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ImportItemsHandler handles warehouse spreadsheet imports
type ImportItemsHandler struct {
	repo      domain.Repository
	movements *movement.Recorder
}

// NewImportItemsHandler creates a new warehouse import handler
func NewImportItemsHandler(repo domain.Repository, movements *movement.Recorder) *ImportItemsHandler {
	return &ImportItemsHandler{repo: repo, movements: movements}
}

// Handle processes the sheet row by row; a bad row is reported, not fatal
func (h *ImportItemsHandler) Handle(ctx context.Context, cmd ImportItemsCommand) (*ImportItemsResult, error) {
	rows, err := cmd.Reader.Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	records, ok := spreadsheet.MapRows(rows)
	if !ok {
		return nil, fmt.Errorf("%w: cannot recognize any headers", domain.ErrValidation)
	}

	result := &ImportItemsResult{Errors: []string{}}
	for i, rec := range records {
		name := rec[spreadsheet.FieldName]
		if name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing required name", i+2))
			continue
		}

		category := rec[spreadsheet.FieldCategory]
		if category == "" {
			category = "Прочее"
		}

		quantity := 1
		if n := spreadsheet.ParseNumber(rec[spreadsheet.FieldQuantity]); n != nil && *n > 0 {
			quantity = int(*n)
		}
		unit := rec[spreadsheet.FieldUnit]
		if unit == "" {
			unit = domain.DefaultUnit
		}

		item := domain.WarehouseItem{
			Name:         name,
			Category:     category,
			Model:        rec[spreadsheet.FieldModel],
			Manufacturer: rec[spreadsheet.FieldManufacturer],
			SerialNumber: rec[spreadsheet.FieldSerialNumber],
			Quantity:     quantity,
			Unit:         unit,
			UnitCost:     spreadsheet.ParseNumber(rec[spreadsheet.FieldCost]),
			DateReceived: spreadsheet.ParseDate(rec[spreadsheet.FieldDateReceived]),
			Supplier:     rec[spreadsheet.FieldSupplier],
			Status:       domain.StatusInStock,
			Location:     rec[spreadsheet.FieldLocation],
			Note:         rec[spreadsheet.FieldNote],
		}

		merged, _, err := h.repo.MergeOrCreate(&item)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		if merged {
			result.Merged++
		} else {
			result.Created++
		}
	}

	// One aggregated audit row for the whole import call
	h.movements.Try(movement.MovementLog{
		User:     cmd.Actor,
		Action:   "Импортировано из Excel",
		ItemName: "Множественно",
		Quantity: result.Created,
		ToTable:  movement.TableWarehouse,
		Note:     fmt.Sprintf("Добавлено %d, объединено %d", result.Created, result.Merged),
	}).Log(ctx)

	return result, nil
}

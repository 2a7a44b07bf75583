package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	equipment "equiptrack/internal/equipment/domain"
	movement "equiptrack/internal/movement/domain"
	"equiptrack/internal/transferact"
)

// GenerateActCommand produces a transfer act for one equipment record
type GenerateActCommand struct {
	Actor        string
	EquipmentID  uint
	TransferTo   string
	TransferDate *time.Time
	ReturnDate   *time.Time
	Note         string
}

// GenerateActResult carries the rendered document and its download name
type GenerateActResult struct {
	Filename string
	Data     []byte
}

// GenerateActHandler handles transfer act generation. Generating the act also
// stamps the transfer fields onto the equipment record.
type GenerateActHandler struct {
	repo      equipment.Repository
	renderer  transferact.Renderer
	movements *movement.Recorder
}

// NewGenerateActHandler creates a new generate act handler
func NewGenerateActHandler(repo equipment.Repository, renderer transferact.Renderer, movements *movement.Recorder) *GenerateActHandler {
	return &GenerateActHandler{repo: repo, renderer: renderer, movements: movements}
}

// Handle executes the generate act command
func (h *GenerateActHandler) Handle(ctx context.Context, cmd GenerateActCommand) (*GenerateActResult, error) {
	transferTo := strings.TrimSpace(cmd.TransferTo)
	if transferTo == "" {
		return nil, fmt.Errorf("%w: transferTo is required", equipment.ErrValidation)
	}

	item, err := h.repo.FindByID(cmd.EquipmentID)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if cmd.TransferDate != nil {
		date = *cmd.TransferDate
	}

	item.TransferTo = transferTo
	item.TransferDate = &date
	if cmd.ReturnDate != nil {
		item.ReturnDate = cmd.ReturnDate
	}
	if err := h.repo.Update(item); err != nil {
		return nil, err
	}

	data, err := h.renderer.Render(transferact.Act{
		Date: date,
		From: item.Responsible,
		To:   transferTo,
		Items: []transferact.ActItem{
			{Name: actItemName(item), Unit: "шт", Qty: 1},
		},
		Note: cmd.Note,
	})
	if err != nil {
		return nil, err
	}

	h.movements.Try(movement.MovementLog{
		User:      cmd.Actor,
		Action:    "Передача",
		ItemName:  item.Name,
		Quantity:  1,
		FromTable: movement.TableInventory,
		ToTable:   movement.TableInventory,
		Note:      fmt.Sprintf("Кому: %s; Дата: %s", transferTo, date.Format("2006-01-02")),
	}).Log(ctx)

	return &GenerateActResult{
		Filename: fmt.Sprintf("transfer-act-%s.docx", filenameKey(item)),
		Data:     data,
	}, nil
}

// actItemName includes the identifying numbers next to the name
func actItemName(item *equipment.Equipment) string {
	parts := []string{item.Name}
	if item.Model != "" {
		parts = append(parts, item.Model)
	}
	if item.SerialNumber != nil {
		parts = append(parts, "с/н "+*item.SerialNumber)
	}
	if item.InventoryNumber != nil {
		parts = append(parts, "инв. "+*item.InventoryNumber)
	}
	return strings.Join(parts, ", ")
}

func filenameKey(item *equipment.Equipment) string {
	key := item.Name
	if item.SerialNumber != nil {
		key = *item.SerialNumber
	}
	if item.InventoryNumber != nil {
		key = *item.InventoryNumber
	}
	return sanitizeFilename(key)
}

func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "document"
	}
	return b.String()
}

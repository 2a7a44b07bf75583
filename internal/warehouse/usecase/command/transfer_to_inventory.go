package command

import (
	"context"
	"fmt"
	"math"
	"time"

	"equiptrack/internal/warehouse/domain"
)

// Cost values at or above this bound are treated as bogus input and dropped
const maxSaneCost = 1e10

// TransferCommand converts bulk units into individual equipment records
type TransferCommand struct {
	Actor           string
	SourceID        uint
	Qty             float64 // raw client value, validated here
	InventoryNumber string
	Cost            *float64
	Location        string
	Responsible     string
	PurchaseDate    *time.Time
	Note            string
}

// TransferHandler handles the atomic warehouse→inventory transfer
type TransferHandler struct {
	repo domain.Repository
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(repo domain.Repository) *TransferHandler {
	return &TransferHandler{repo: repo}
}

// Handle validates the request and executes the transfer. Validation failures
// reject the request before any row is touched.
func (h *TransferHandler) Handle(ctx context.Context, cmd TransferCommand) (*domain.TransferResult, error) {
	if math.IsNaN(cmd.Qty) || math.IsInf(cmd.Qty, 0) || cmd.Qty <= 0 {
		return nil, fmt.Errorf("%w: qty must be a positive number", domain.ErrValidation)
	}

	// Invalid cost never aborts the transfer; it is simply not applied
	cost := cmd.Cost
	if cost != nil {
		if math.IsNaN(*cost) || math.IsInf(*cost, 0) || *cost < 0 || *cost >= maxSaneCost {
			cost = nil
		}
	}

	return h.repo.TransferToInventory(domain.TransferRequest{
		Actor:           cmd.Actor,
		SourceID:        cmd.SourceID,
		Qty:             int(cmd.Qty),
		InventoryNumber: cmd.InventoryNumber,
		Cost:            cost,
		Location:        cmd.Location,
		Responsible:     cmd.Responsible,
		PurchaseDate:    cmd.PurchaseDate,
		Note:            cmd.Note,
	})
}

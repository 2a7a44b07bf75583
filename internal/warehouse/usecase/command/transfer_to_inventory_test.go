package command

import (
	"context"
	"errors"
	"math"
	"testing"

	"equiptrack/internal/warehouse/domain"
)

// stubRepository records the transfer request it receives
type stubRepository struct {
	domain.Repository
	called bool
	last   domain.TransferRequest
}

func (s *stubRepository) TransferToInventory(req domain.TransferRequest) (*domain.TransferResult, error) {
	s.called = true
	s.last = req
	return &domain.TransferResult{}, nil
}

func TestTransferRejectsNonPositiveQty(t *testing.T) {
	for _, qty := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		repo := &stubRepository{}
		handler := NewTransferHandler(repo)

		_, err := handler.Handle(context.Background(), TransferCommand{SourceID: 1, Qty: qty})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("qty %v: expected ErrValidation, got %v", qty, err)
		}
		if repo.called {
			t.Fatalf("qty %v: repository must not be touched on invalid input", qty)
		}
	}
}

func TestTransferDropsBogusCost(t *testing.T) {
	cases := []float64{-5, math.NaN(), math.Inf(1), 1e10, 5e12}
	for _, cost := range cases {
		repo := &stubRepository{}
		handler := NewTransferHandler(repo)

		c := cost
		if _, err := handler.Handle(context.Background(), TransferCommand{SourceID: 1, Qty: 1, Cost: &c}); err != nil {
			t.Fatalf("cost %v: unexpected error %v", cost, err)
		}
		if repo.last.Cost != nil {
			t.Fatalf("cost %v: expected it to be dropped, got %v", cost, *repo.last.Cost)
		}
	}
}

func TestTransferKeepsValidCost(t *testing.T) {
	repo := &stubRepository{}
	handler := NewTransferHandler(repo)

	cost := 49990.0
	if _, err := handler.Handle(context.Background(), TransferCommand{SourceID: 1, Qty: 2.0, Cost: &cost}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.last.Qty != 2 {
		t.Fatalf("expected qty 2, got %d", repo.last.Qty)
	}
	if repo.last.Cost == nil || *repo.last.Cost != cost {
		t.Fatalf("expected cost to pass through")
	}
}

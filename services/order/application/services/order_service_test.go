package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ghuser/contracthub/pkg/config"
	"github.com/ghuser/contracthub/pkg/logger"
	orderdomain "github.com/ghuser/contracthub/services/order/domain"
	"github.com/ghuser/contracthub/services/order/domain/models"
)

type fakeOrderRepo struct {
	saved []*models.Order
}

func (f *fakeOrderRepo) Save(_ context.Context, o *models.Order) error {
	o.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, o)
	return nil
}

type fakeLookup struct {
	numbers map[int64]string
	err     error
}

func (f *fakeLookup) ContractNumber(_ context.Context, id int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	n, ok := f.numbers[id]
	if !ok {
		return "", orderdomain.ErrContractUnknown
	}
	return n, nil
}

func input(contractID int64) PlaceInput {
	return PlaceInput{
		ContractID: contractID,
		Email:      "an@example.com",
		FullName:   "An Nguyen",
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		TopupFee:   500000,
	}
}

func TestOrderService_Place(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error"})
	lookup := &fakeLookup{numbers: map[int64]string{1: "HD-NEW"}}

	t.Run("resolves contract number", func(t *testing.T) {
		repo := &fakeOrderRepo{}
		o, err := NewOrderService(repo, lookup, log).Place(context.Background(), input(1))
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		if o.ContractNumber != "HD-NEW" || o.ID != 1 {
			t.Errorf("unexpected order: %+v", o)
		}
	})

	t.Run("unknown contract falls back", func(t *testing.T) {
		repo := &fakeOrderRepo{}
		o, err := NewOrderService(repo, lookup, log).Place(context.Background(), input(404))
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		if o.ContractNumber != models.UnknownContractNumber {
			t.Errorf("expected %q, got %q", models.UnknownContractNumber, o.ContractNumber)
		}
		if len(repo.saved) != 1 {
			t.Errorf("expected order to be saved, got %d", len(repo.saved))
		}
	})

	t.Run("lookup failure aborts", func(t *testing.T) {
		repo := &fakeOrderRepo{}
		boom := errors.New("contract store down")
		_, err := NewOrderService(repo, &fakeLookup{err: boom}, log).Place(context.Background(), input(1))
		if !errors.Is(err, boom) {
			t.Fatalf("expected lookup error, got %v", err)
		}
		if len(repo.saved) != 0 {
			t.Error("order saved despite lookup failure")
		}
	})

	t.Run("invalid order", func(t *testing.T) {
		in := input(1)
		in.TopupFee = 0
		_, err := NewOrderService(&fakeOrderRepo{}, lookup, log).Place(context.Background(), in)
		if !errors.Is(err, orderdomain.ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder, got %v", err)
		}
	})
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/contracthub/pkg/config"
	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/logger"
	historydomain "github.com/ghuser/contracthub/services/history/domain"
	"github.com/ghuser/contracthub/services/history/domain/models"
)

// memHistory mirrors the unique event_id index and the list ordering.
type memHistory struct {
	entries []models.ContractHistory
}

func (m *memHistory) Append(_ context.Context, h *models.ContractHistory) (bool, error) {
	if h.HasEventID() {
		for _, e := range m.entries {
			if e.EventID == h.EventID {
				return false, nil
			}
		}
	}
	h.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, *h)
	return true, nil
}

func (m *memHistory) ListByContract(_ context.Context, contractID int64) ([]*models.ContractHistory, error) {
	var out []*models.ContractHistory
	for _, e := range m.entries {
		if e.ContractID == contractID {
			e := e
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func newTestService() (*HistoryService, *memHistory) {
	repo := &memHistory{}
	return NewHistoryService(repo, logger.New(&config.Config{LogLevel: "error"})), repo
}

func changed(contractID int64, at time.Time, from, to string) contracts.ContractChangedEvent {
	return contracts.ContractChangedEvent{
		Envelope:   contracts.NewEnvelope(at),
		ContractID: contractID,
		Action:     "Updated",
		OldValue:   json.RawMessage(`{"email":"` + from + `"}`),
		NewValue:   json.RawMessage(`{"email":"` + to + `"}`),
		Timestamp:  at,
		ChangedBy:  "ops@example.com",
	}
}

// TestRecord_AppendOnlyOrdered: each change adds one row, rows are never
// rewritten and the list comes back in timestamp order.
func TestRecord_AppendOnlyOrdered(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	// Delivered out of order.
	second := changed(42, t0.Add(time.Hour), "b@example.com", "c@example.com")
	first := changed(42, t0, "a@example.com", "b@example.com")
	other := changed(7, t0, "x@example.com", "y@example.com")
	for _, evt := range []contracts.ContractChangedEvent{second, first, other} {
		if err := svc.Record(ctx, evt); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	before := append([]models.ContractHistory(nil), repo.entries...)

	third := changed(42, t0.Add(2*time.Hour), "c@example.com", "d@example.com")
	if err := svc.Record(ctx, third); err != nil {
		t.Fatalf("Record: %v", err)
	}
	for i, e := range before {
		if string(repo.entries[i].NewValue) != string(e.NewValue) || repo.entries[i].ID != e.ID {
			t.Fatalf("entry %d was rewritten", i)
		}
	}

	got, err := svc.List(ctx, 42)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for i, want := range []contracts.ContractChangedEvent{first, second, third} {
		if got[i].EventID != want.EventID {
			t.Errorf("position %d: got event %s, want %s", i, got[i].EventID, want.EventID)
		}
	}
}

func TestRecord_RedeliveryIgnored(t *testing.T) {
	svc, repo := newTestService()
	evt := changed(42, time.Now(), "a@example.com", "b@example.com")

	for range 2 {
		if err := svc.Record(context.Background(), evt); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if len(repo.entries) != 1 {
		t.Errorf("expected 1 entry after redelivery, got %d", len(repo.entries))
	}
}

func TestRecord_WithoutEventIDAlwaysAppends(t *testing.T) {
	svc, repo := newTestService()
	evt := changed(42, time.Now(), "a@example.com", "b@example.com")
	evt.EventID = uuid.Nil

	for range 2 {
		if err := svc.Record(context.Background(), evt); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if len(repo.entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(repo.entries))
	}
}

func TestRecord_FallsBackToOccurredAt(t *testing.T) {
	svc, repo := newTestService()
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	evt := changed(42, at, "a@example.com", "b@example.com")
	evt.Timestamp = time.Time{}

	if err := svc.Record(context.Background(), evt); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !repo.entries[0].Timestamp.Equal(at) {
		t.Errorf("timestamp: got %v, want %v", repo.entries[0].Timestamp, at)
	}
}

func TestRecord_Invalid(t *testing.T) {
	svc, _ := newTestService()
	evt := changed(0, time.Now(), "a@example.com", "b@example.com")

	err := svc.Record(context.Background(), evt)
	if !errors.Is(err, historydomain.ErrInvalidHistory) {
		t.Fatalf("expected ErrInvalidHistory, got %v", err)
	}
}

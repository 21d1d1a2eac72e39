package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewContractHistory(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("ICT", 7*3600))

	tests := []struct {
		name       string
		contractID int64
		action     string
		at         time.Time
		wantErr    bool
	}{
		{"valid", 42, "Updated", at, false},
		{"zero contract", 0, "Updated", at, true},
		{"missing action", 42, "", at, true},
		{"missing timestamp", 42, "Updated", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewContractHistory(uuid.New(), tt.contractID, tt.action, nil, nil, tt.at, "a@example.com", "req-1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewContractHistory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && h.Timestamp.Location() != time.UTC {
				t.Errorf("timestamp not normalised to UTC: %v", h.Timestamp)
			}
		})
	}
}

func TestNewContractHistory_KeepsPayloadsVerbatim(t *testing.T) {
	old := json.RawMessage(`{"email":"a@example.com"}`)
	h, err := NewContractHistory(uuid.Nil, 1, "Updated", old, json.RawMessage("null"), time.Now(), "", "")
	if err != nil {
		t.Fatalf("NewContractHistory: %v", err)
	}
	if string(h.OldValue) != string(old) {
		t.Errorf("old value: got %s", h.OldValue)
	}
	if h.NewValue != nil {
		t.Errorf("null new value should be stored as SQL NULL, got %s", h.NewValue)
	}
	if h.HasEventID() {
		t.Error("nil event id reported as present")
	}
}

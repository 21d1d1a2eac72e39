package models

import (
	"testing"
	"time"
)

func TestNewOrder(t *testing.T) {
	start := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      int64
		number  string
		start   time.Time
		end     time.Time
		fee     int64
		wantErr bool
	}{
		{"valid", 7, "HD-NEW", start, end, 500000, false},
		{"same day", 7, "HD-NEW", start, start, 1, false},
		{"end before start", 7, "HD-NEW", end, start, 500000, true},
		{"zero fee", 7, "HD-NEW", start, end, 0, true},
		{"missing contract", 0, "HD-NEW", start, end, 500000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrder(tt.id, tt.number, "an@example.com", "An Nguyen", tt.start, tt.end, tt.fee)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewOrder error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (o.StartDate.Hour() != 0 || o.StartDate.Day() != tt.start.Day()) {
				t.Errorf("start date not truncated to the day: %v", o.StartDate)
			}
		})
	}
}

func TestNewOrder_EmptyContractNumberIsUnknown(t *testing.T) {
	o, err := NewOrder(7, "", "an@example.com", "An Nguyen", time.Now(), time.Now(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.ContractNumber != UnknownContractNumber {
		t.Fatalf("expected %q, got %q", UnknownContractNumber, o.ContractNumber)
	}
}

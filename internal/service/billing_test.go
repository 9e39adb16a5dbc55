package service

import (
	"testing"
	"time"
)

func TestComputeFee(t *testing.T) {
	entry := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		elapsed   time.Duration
		wantHours int
		wantFee   float64
	}{
		{name: "one minute", elapsed: time.Minute, wantHours: 1, wantFee: 500},
		{name: "thirty seconds", elapsed: 30 * time.Second, wantHours: 1, wantFee: 500},
		{name: "exactly one hour", elapsed: time.Hour, wantHours: 1, wantFee: 500},
		{name: "sixty one minutes", elapsed: 61 * time.Minute, wantHours: 2, wantFee: 1000},
		{name: "ninety minutes", elapsed: 90 * time.Minute, wantHours: 2, wantFee: 1000},
		{name: "exactly two hours", elapsed: 2 * time.Hour, wantHours: 2, wantFee: 1000},
		{name: "two hours one second", elapsed: 2*time.Hour + time.Second, wantHours: 3, wantFee: 1500},
		{name: "zero elapsed", elapsed: 0, wantHours: 1, wantFee: 500},
		{name: "clock skew", elapsed: -10 * time.Minute, wantHours: 1, wantFee: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, hours := ComputeFee(entry, entry.Add(tt.elapsed), DefaultHourlyRate)
			if hours != tt.wantHours {
				t.Errorf("durationHours = %d, want %d", hours, tt.wantHours)
			}
			if amount != tt.wantFee {
				t.Errorf("amount = %v, want %v", amount, tt.wantFee)
			}
		})
	}
}

func TestComputeFeeCustomRate(t *testing.T) {
	entry := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	amount, hours := ComputeFee(entry, entry.Add(3*time.Hour), 200)
	if hours != 3 {
		t.Fatalf("durationHours = %d, want 3", hours)
	}
	if amount != 600 {
		t.Fatalf("amount = %v, want 600", amount)
	}
}

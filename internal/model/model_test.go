package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusConfirmed, false},
		// same-status updates are no-ops
		{StatusScheduled, StatusScheduled, true},
		{StatusCompleted, StatusCompleted, true},
		{StatusCancelled, StatusCancelled, true},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []string{"", "pending", "SCHEDULED"} {
		if ValidStatus(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		if !ValidPriority(p) {
			t.Errorf("%s should be valid", p)
		}
	}
	if ValidPriority("urgent") {
		t.Error("urgent should be invalid")
	}
}

package models

import (
	"testing"
	"time"
)

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusPreparing, true},
		{StatusPending, StatusReady, false},
		{StatusPending, StatusDelivered, false},
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusPending, false},
		{StatusPreparing, StatusDelivered, false},
		{StatusReady, StatusDelivered, true},
		{StatusReady, StatusPreparing, false},
		{StatusDelivered, StatusReady, false},
		{StatusDelivered, StatusDelivered, false},
		{StatusCancelled, StatusPreparing, false},
		{StatusPending, StatusCancelled, false},
		{"", StatusPreparing, false},
		{StatusPending, "", false},
	}
	for _, tt := range tests {
		got := ValidStatusTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("ValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusProgressionReachesDelivered(t *testing.T) {
	status := StatusPending
	for i := 0; i < 3; i++ {
		next, ok := nextStatus(status)
		if !ok {
			t.Fatalf("nextStatus(%q) should advance", status)
		}
		if !ValidStatusTransition(status, next) {
			t.Fatalf("nextStatus(%q) = %q is not a valid transition", status, next)
		}
		status = next
	}
	if status != StatusDelivered {
		t.Fatalf("expected delivered after three advances, got %q", status)
	}

	// final stage: further advances are no-ops
	next, ok := nextStatus(status)
	if ok || next != StatusDelivered {
		t.Errorf("nextStatus(delivered) = %q, %v; want delivered, false", next, ok)
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	if _, ok := nextStatus(StatusCancelled); ok {
		t.Error("cancelled orders must not advance")
	}
}

func TestWithinCancelWindow(t *testing.T) {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	order := &Order{Status: StatusPending}
	order.CreatedAt = created

	if !order.WithinCancelWindow(created.Add(9 * time.Minute)) {
		t.Error("cancellation at 9 minutes should be allowed")
	}
	if order.WithinCancelWindow(created.Add(11 * time.Minute)) {
		t.Error("cancellation at 11 minutes should be refused")
	}

	order.Status = StatusPreparing
	if order.WithinCancelWindow(created.Add(1 * time.Minute)) {
		t.Error("only pending orders may be cancelled")
	}
}

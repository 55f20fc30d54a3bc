package domain

import (
	"testing"
	"time"
)

func TestBookingStatusMachine(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{BookingSoftHold, BookingConfirmed, true},
		{BookingSoftHold, BookingCancelled, true},
		{BookingSoftHold, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingSoftHold, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingCancelled, BookingConfirmed, false},
	}

	for _, c := range cases {
		b := Booking{Status: c.from}
		if got := b.CanTransitionTo(c.to); got != c.ok {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestSoftHoldAgesOut(t *testing.T) {
	created := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	b := Booking{Status: BookingSoftHold, CreatedAt: created}

	if !b.Active(created.Add(10*time.Minute), DefaultSoftHoldTTL) {
		t.Error("expected hold to be active within the TTL")
	}
	if b.Active(created.Add(16*time.Minute), DefaultSoftHoldTTL) {
		t.Error("expected hold to stop occupying the slot past the TTL")
	}

	b.Status = BookingConfirmed
	if !b.Active(created.Add(24*time.Hour), DefaultSoftHoldTTL) {
		t.Error("confirmed bookings never age out")
	}
}

func TestRequestEffectiveStatus(t *testing.T) {
	deadline := time.Date(2026, 9, 9, 10, 0, 0, 0, time.UTC)
	r := BookingRequest{Status: RequestPending, ExpiresAt: deadline}

	if got := r.EffectiveStatus(deadline.Add(-time.Minute)); got != RequestPending {
		t.Errorf("before deadline: got %s", got)
	}
	if got := r.EffectiveStatus(deadline.Add(time.Minute)); got != RequestExpired {
		t.Errorf("after deadline: got %s", got)
	}

	// decided requests never flip to expired
	r.Status = RequestAccepted
	if got := r.EffectiveStatus(deadline.Add(time.Hour)); got != RequestAccepted {
		t.Errorf("accepted past deadline: got %s", got)
	}
}

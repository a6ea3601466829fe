package domain

import "testing"

func TestNextAllowedTransitions(t *testing.T) {
	cases := []struct {
		cur  Status
		ev   Event
		want Status
	}{
		{StatusUnpaid, EventPay, StatusConfirming},
		{StatusConfirming, EventConfirm, StatusPaid},
		{StatusPaid, EventShip, StatusShipped},
		{StatusShipped, EventComplete, StatusCompleted},
		{StatusUnpaid, EventCancel, StatusCancelled},
		{StatusConfirming, EventCancel, StatusCancelled},
		{StatusPaid, EventCancel, StatusCancelled},
		{StatusShipped, EventCancel, StatusCancelled},
		{StatusUnpaid, EventDelist, StatusDelisted},
		{StatusCompleted, EventDelist, StatusDelisted},
		{StatusCancelled, EventDelist, StatusDelisted},
	}
	for _, tc := range cases {
		next, advanced, err := Next(tc.cur, tc.ev)
		if err != nil {
			t.Fatalf("%s + %s: unexpected error %v", tc.cur, tc.ev, err)
		}
		if !advanced || next != tc.want {
			t.Fatalf("%s + %s: want %s advanced, got %s advanced=%v", tc.cur, tc.ev, tc.want, next, advanced)
		}
	}
}

func TestNextRejectsUndefinedTransitions(t *testing.T) {
	cases := []struct {
		cur Status
		ev  Event
	}{
		{StatusUnpaid, EventConfirm},   // cannot confirm before pay request
		{StatusUnpaid, EventShip},      // cannot ship unpaid
		{StatusUnpaid, EventComplete},  // cannot complete unpaid
		{StatusConfirming, EventPay},   // pay already requested
		{StatusPaid, EventComplete},    // not shipped yet
		{StatusCancelled, EventShip},   // shipping a cancelled order
		{StatusCompleted, EventCancel}, // cancelling a completed order
		{StatusCancelled, EventComplete},
		{StatusDelisted, EventPay},
		{StatusDelisted, EventCancel},
	}
	for _, tc := range cases {
		if _, _, err := Next(tc.cur, tc.ev); err != ErrInvalidTransition {
			t.Fatalf("%s + %s: want ErrInvalidTransition, got %v", tc.cur, tc.ev, err)
		}
	}
}

func TestNextTerminalNoOps(t *testing.T) {
	next, advanced, err := Next(StatusCompleted, EventComplete)
	if err != nil || advanced || next != StatusCompleted {
		t.Fatalf("complete on completed: want no-op, got %s advanced=%v err=%v", next, advanced, err)
	}
	next, advanced, err = Next(StatusCancelled, EventCancel)
	if err != nil || advanced || next != StatusCancelled {
		t.Fatalf("cancel on cancelled: want no-op, got %s advanced=%v err=%v", next, advanced, err)
	}
}

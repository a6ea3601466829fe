package domain

import "errors"

// Order status lifecycle:
//
//	unpaid -> confirming -> paid -> shipped -> completed
//	unpaid|confirming|paid|shipped -> cancelled
//	any -> delisted (product removed from catalog)
type Status string

const (
	StatusUnpaid     Status = "unpaid"
	StatusConfirming Status = "confirming"
	StatusPaid       Status = "paid"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusDelisted   Status = "delisted"
)

type Event string

const (
	EventPay      Event = "pay"      // customer requests payment
	EventConfirm  Event = "confirm"  // admin confirms payment
	EventShip     Event = "ship"     // admin ships
	EventComplete Event = "complete" // customer acknowledges receipt
	EventCancel   Event = "cancel"   // customer cancels, restocks
	EventDelist   Event = "delist"   // product removed from catalog
)

var ErrInvalidTransition = errors.New("invalid status transition")

var transitions = map[Status]map[Event]Status{
	StatusUnpaid: {
		EventPay:    StatusConfirming,
		EventCancel: StatusCancelled,
		EventDelist: StatusDelisted,
	},
	StatusConfirming: {
		EventConfirm: StatusPaid,
		EventCancel:  StatusCancelled,
		EventDelist:  StatusDelisted,
	},
	StatusPaid: {
		EventShip:   StatusShipped,
		EventCancel: StatusCancelled,
		EventDelist: StatusDelisted,
	},
	StatusShipped: {
		EventComplete: StatusCompleted,
		EventCancel:   StatusCancelled,
		EventDelist:   StatusDelisted,
	},
	StatusCompleted: {
		EventDelist: StatusDelisted,
	},
	StatusCancelled: {
		EventDelist: StatusDelisted,
	},
	StatusDelisted: {},
}

// Next resolves a transition. Undefined (status, event) pairs return
// ErrInvalidTransition, except re-applying the event that already produced
// a terminal state, which is a no-op (complete on completed, cancel on
// cancelled). The no-op case reports advanced=false so side effects such as
// restocking run at most once.
func Next(cur Status, ev Event) (next Status, advanced bool, err error) {
	if (cur == StatusCompleted && ev == EventComplete) ||
		(cur == StatusCancelled && ev == EventCancel) {
		return cur, false, nil
	}
	m, ok := transitions[cur]
	if !ok {
		return "", false, ErrInvalidTransition
	}
	next, ok = m[ev]
	if !ok {
		return "", false, ErrInvalidTransition
	}
	return next, true, nil
}

// ActiveStatuses are orders still moving through the lifecycle.
var ActiveStatuses = []Status{StatusUnpaid, StatusConfirming, StatusPaid, StatusShipped}

// FinishedStatuses are terminal: the order history view.
var FinishedStatuses = []Status{StatusCompleted, StatusCancelled, StatusDelisted}

// CancellableStatuses are the states a customer may cancel from; the cancel
// path uses this set in a conditional update so the restock fires exactly once.
var CancellableStatuses = []Status{StatusUnpaid, StatusConfirming, StatusPaid, StatusShipped}

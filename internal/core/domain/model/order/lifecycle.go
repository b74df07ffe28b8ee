package order

// Lifecycle is the ordered status sequence of one order type:
//
//	delivery: new ─> confirmed ─> preparing ─> ready ─> out_for_delivery ─> delivered
//	pickup:   new ─> confirmed ─> preparing ─> ready ─> picked_up
//	dine_in:  new ─> confirmed ─> preparing ─> ready ─> served
//
// cancelled is reachable from anywhere and sits outside every sequence.
// Regressions are judged on one ordering shared by all types, so a status
// taken from another type's sequence still has a position.
type Lifecycle struct {
	orderType Type
	sequence  []Status
}

var (
	deliveryLifecycle = Lifecycle{
		orderType: TypeDelivery,
		sequence: []Status{
			StatusNew, StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery, StatusDelivered,
		},
	}
	pickupLifecycle = Lifecycle{
		orderType: TypePickup,
		sequence:  []Status{StatusNew, StatusConfirmed, StatusPreparing, StatusReady, StatusPickedUp},
	}
	dineInLifecycle = Lifecycle{
		orderType: TypeDineIn,
		sequence:  []Status{StatusNew, StatusConfirmed, StatusPreparing, StatusReady, StatusServed},
	}
	// canonicalOrder ranks every non-cancelled status. Each lifecycle is a
	// subsequence of it.
	canonicalOrder = []Status{
		StatusNew, StatusConfirmed, StatusPreparing, StatusReady,
		StatusOutForDelivery, StatusDelivered, StatusPickedUp, StatusServed,
	}
)

// CanonicalPosition returns the index of s in the ordering shared by all
// order types. cancelled and unknown statuses have none.
func CanonicalPosition(s Status) (int, bool) {
	for i, candidate := range canonicalOrder {
		if candidate == s {
			return i, true
		}
	}
	return 0, false
}

func (l Lifecycle) Type() Type {
	return l.orderType
}

// Sequence returns a copy of the ordered statuses.
func (l Lifecycle) Sequence() []Status {
	out := make([]Status, len(l.sequence))
	copy(out, l.sequence)
	return out
}

// Fulfilment is the last status of the sequence.
func (l Lifecycle) Fulfilment() Status {
	return l.sequence[len(l.sequence)-1]
}

// Position returns the index of s in the sequence.
func (l Lifecycle) Position(s Status) (int, bool) {
	for i, candidate := range l.sequence {
		if candidate == s {
			return i, true
		}
	}
	return 0, false
}

// IsRegression reports whether moving from previous to requested goes to an
// equal or earlier canonical position. cancelled and unknown statuses are
// never a regression.
func (l Lifecycle) IsRegression(previous, requested Status) bool {
	prevIdx, prevOK := CanonicalPosition(previous)
	nextIdx, nextOK := CanonicalPosition(requested)
	return prevOK && nextOK && nextIdx <= prevIdx
}

// Next returns the status following s, if any.
func (l Lifecycle) Next(s Status) (Status, bool) {
	idx, ok := l.Position(s)
	if !ok || idx == len(l.sequence)-1 {
		return "", false
	}
	return l.sequence[idx+1], true
}

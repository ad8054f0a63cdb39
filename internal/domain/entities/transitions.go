package entities

// allowedTransitions is the static adjacency map over order statuses.
// Every status-changing operation consults it; it never changes at runtime.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusCreated:            {StatusDiagnosed, StatusCancelled},
	StatusDiagnosed:          {StatusAuthorized, StatusCancelled},
	StatusAuthorized:         {StatusInProgress, StatusCancelled},
	StatusInProgress:         {StatusCompleted, StatusCancelled},
	StatusCompleted:          {StatusDelivered, StatusCancelled},
	StatusDelivered:          {StatusCancelled},
	StatusWaitingForApproval: {StatusAuthorized, StatusCancelled},
	StatusCancelled:          {},
}

// CanTransition reports whether an edge from -> to exists in the transition
// table. Unknown statuses have no outgoing edges.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transitionEvents maps a target status to the event recorded when an order
// reaches it through a generic transition.
var transitionEvents = map[OrderStatus]EventType{
	StatusDiagnosed:  EventOrderDiagnosed,
	StatusAuthorized: EventOrderAuthorized,
	StatusInProgress: EventRepairStarted,
	StatusCompleted:  EventRepairCompleted,
	StatusDelivered:  EventOrderDelivered,
	StatusCancelled:  EventOrderCancelled,
}

// EventForStatus returns the event type recorded when an order transitions to
// the given status. Unmapped targets fall back to EventOrderCreated.
func EventForStatus(to OrderStatus) EventType {
	if evt, ok := transitionEvents[to]; ok {
		return evt
	}
	return EventOrderCreated
}

// ValidStatuses returns every status reachable in the lifecycle, used by the
// HTTP layer to validate transition requests.
func ValidStatuses() []OrderStatus {
	return []OrderStatus{
		StatusCreated,
		StatusDiagnosed,
		StatusAuthorized,
		StatusInProgress,
		StatusWaitingForApproval,
		StatusCompleted,
		StatusDelivered,
		StatusCancelled,
	}
}

// IsValidStatus reports whether s is one of the eight lifecycle statuses.
func IsValidStatus(s OrderStatus) bool {
	for _, v := range ValidStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

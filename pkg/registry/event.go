package registry

// EventKind identifies the mutation that produced an Event.
type EventKind int

const (
	EventAdded EventKind = iota
	EventStatusChanged
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventStatusChanged:
		return "status_changed"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes one effective mutation. Record is the state after the
// change (or the deleted record for EventRemoved); Previous is the status
// before the change.
type Event struct {
	Kind     EventKind
	Record   Record
	Previous Status
}

// Hook observes registry mutations. Hooks run synchronously on the
// caller's goroutine and must not mutate the registry.
type Hook func(Event)

func (r *Registry) emit(ev Event) {
	for _, h := range r.hooks {
		h(ev)
	}
}

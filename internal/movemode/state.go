package movemode

// Intention is what the held modifiers ask for.
type Intention int

const (
	// IntentionIdle means no drag is requested
	IntentionIdle Intention = iota
	// IntentionMove means pointer motion moves the window
	IntentionMove
	// IntentionResize means pointer motion resizes the window
	IntentionResize
)

// String returns the string representation of the intention
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "idle"
	case IntentionMove:
		return "move"
	case IntentionResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Active reports whether the intention drives a gesture.
func (i Intention) Active() bool {
	return i == IntentionMove || i == IntentionResize
}

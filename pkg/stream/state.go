package stream

// State represents the lifecycle state of a session
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateCompleted
	StateFailed
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state admits no further transitions.
// A new request always creates a new session.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

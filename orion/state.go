package orion

// State is the lifecycle state of the application.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateShuttingDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateReady:
		return "Ready"
	case StateShuttingDown:
		return "ShuttingDown"
	default:
		return "State(?)"
	}
}

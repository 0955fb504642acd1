package importer

// State is the orchestrator phase of a single import.
type State int

const (
	StateIdle State = iota
	StateParsing
	StateImporting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateParsing:
		return "parsing"
	case StateImporting:
		return "importing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

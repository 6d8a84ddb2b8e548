package command

// State is the lifecycle position of a Command.
//
//	Idle ──Invoke──▶ Running ──ok──▶ Succeeded
//	                    │
//	                    └──err──▶ Failed
//
// Succeeded and Failed accept further invocations, and Clear takes them back to Idle.
type State int

const (
	Idle State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

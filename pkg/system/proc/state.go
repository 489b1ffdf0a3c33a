package proc

// RunState is the closed set of scheduling states a process can be reported in.
type RunState int

const (
	StateOther RunState = iota
	StateRunning
	StateSleeping
	StateDiskWait
	StateZombie
	StateStopped
)

func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSleeping:
		return "sleeping"
	case StateDiskWait:
		return "disk-wait"
	case StateZombie:
		return "zombie"
	case StateStopped:
		return "stopped"
	default:
		return "other"
	}
}

// ParseRunState maps the single-character kernel state code to a RunState.
// Codes outside the known set (I, X, x, K, W, P, ...) map to StateOther.
func ParseRunState(code byte) RunState {
	switch code {
	case 'R':
		return StateRunning
	case 'S':
		return StateSleeping
	case 'D':
		return StateDiskWait
	case 'Z':
		return StateZombie
	case 'T', 't':
		return StateStopped
	default:
		return StateOther
	}
}

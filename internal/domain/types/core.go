package types

import "fmt"

// Role selects which fixed script a party runs.
type Role int

const (
	Requester Role = iota
	Responder
)

// String returns the lower-case role name used in logs and file names.
func (r Role) String() string {
	switch r {
	case Requester:
		return "requester"
	case Responder:
		return "responder"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Peer returns the opposite role.
func (r Role) Peer() Role {
	if r == Requester {
		return Responder
	}
	return Requester
}

// Gate names one of the three barrier latches.
type Gate int

const (
	KeysExchanged Gate = iota
	RequestReady
	ResultReady
)

// NumGates is the number of latches in a barrier.
const NumGates = 3

// String returns the gate name.
func (g Gate) String() string {
	switch g {
	case KeysExchanged:
		return "keys_exchanged"
	case RequestReady:
		return "request_ready"
	case ResultReady:
		return "result_ready"
	default:
		return fmt.Sprintf("gate(%d)", int(g))
	}
}

// Valid reports whether g is one of the three gates.
func (g Gate) Valid() bool { return g >= KeysExchanged && g <= ResultReady }

// Phase is the global protocol state derived from the open gates.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseKeysExchanged
	PhaseRequestReady
	PhaseResultReady
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseKeysExchanged:
		return "keys_exchanged"
	case PhaseRequestReady:
		return "request_ready"
	case PhaseResultReady:
		return "result_ready"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Status is the terminal state of a party script.
type Status int

const (
	StatusCompleted Status = iota
	StatusRejected
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// DocumentName identifies one exchange (the request file name shared by
// every artifact of the run).
type DocumentName string

// String returns the string form of the name.
func (n DocumentName) String() string { return string(n) }

package hybrid

// State is a step of a single view operation.
//
//	Idle -> Verifying -> VerifiedOK -> Decrypting -> Done | Failed
//	                  -> VerifiedFail -> Failed
//
// Every VerifyAndDecrypt call starts again from Idle.
type State int

// View states. See State for the allowed transitions.
const (
	StateIdle State = iota
	StateVerifying
	StateVerifiedOK
	StateVerifiedFail
	StateDecrypting
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:         "idle",
	StateVerifying:    "verifying",
	StateVerifiedOK:   "verified",
	StateVerifiedFail: "verification-failed",
	StateDecrypting:   "decrypting",
	StateDone:         "done",
	StateFailed:       "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool { return s == StateDone || s == StateFailed }

// tracker reports transitions of one view operation to an optional observer.
type tracker struct {
	observe func(State)
	current State
}

func newTracker(observe func(State)) *tracker {
	t := &tracker{observe: observe, current: StateIdle}
	t.emit()
	return t
}

func (t *tracker) enter(s State) {
	t.current = s
	t.emit()
}

func (t *tracker) emit() {
	if t.observe != nil {
		t.observe(t.current)
	}
}

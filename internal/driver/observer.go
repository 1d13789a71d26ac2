package driver

// Phase identifies one stage of a driver run.
type Phase uint8

const (
	PhaseLoad Phase = iota
	PhaseParse
	PhaseBind
	PhaseCheck
	PhaseEmit
)

func (p Phase) String() string {
	switch p {
	case PhaseLoad:
		return "load"
	case PhaseParse:
		return "parse"
	case PhaseBind:
		return "bind"
	case PhaseCheck:
		return "check"
	case PhaseEmit:
		return "emit"
	}
	return "unknown"
}

// Observer receives progress events from a driver run. Calls for one phase
// may arrive from several goroutines; implementations must be safe for
// concurrent use.
type Observer interface {
	// FileDone fires after one file finishes a phase; errs is the number of
	// error diagnostics the phase added for that file.
	FileDone(phase Phase, path string, errs int)
	// PhaseDone fires once per phase, after every file has passed it.
	PhaseDone(phase Phase)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) FileDone(Phase, string, int) {}
func (NopObserver) PhaseDone(Phase)             {}

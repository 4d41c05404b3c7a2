package driver

import "time"

type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent marks the start or end of the load, decode or sema phase of
// one file. Elapsed is set on PhaseEnd only.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver is called synchronously from the goroutine checking Path,
// so with CheckFiles it must tolerate concurrent calls.
type PhaseObserver func(PhaseEvent)

package pipeline

import "fmt"

// Stage names the states of a single-file run. A run moves strictly
// forward; there is no retry, the operator fixes the cause and re-runs
// from the start.
type Stage string

const (
	StageStart      Stage = "start"
	StageExtracted  Stage = "extracted"
	StageCleaned    Stage = "cleaned"
	StageStructured Stage = "structured"
	StageFinalized  Stage = "finalized"
	StageDone       Stage = "done"
)

// StageError is the terminal Failed state: it reports which stage could
// not be completed and why. Partially written output files are left in
// place and must be treated as unreliable.
type StageError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline failed at stage %q for %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

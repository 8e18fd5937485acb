package domain

// Process exit codes. Full success and a clean already-patched no-op both exit
// zero; a run where nothing was recognized exits like a fatal failure because
// the target is most likely not a supported bundle.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitPartial = 2
)

// ExitError is an error that carries a specific process exit code up to the
// command layer.
type ExitError struct {
	Code   int
	Reason string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Reason
}

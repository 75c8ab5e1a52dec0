package toolcall

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Use errors.Is to check.
var (
	ErrToolNotFound = errors.New("tool not found")
	// ErrRecordNotFound is returned when an update/destroy action cannot
	// locate its target record. Fatal to the affected call only.
	ErrRecordNotFound = errors.New("record not found for mutation")
	// ErrInvalidToolConfiguration is returned by NewDefinition when the
	// execution target is missing or malformed. It never surfaces from the
	// executor: definitions are validated before any call can reference them.
	ErrInvalidToolConfiguration = errors.New("invalid tool configuration")
	// ErrNoActionEngine is returned when an action-backed tool is dispatched
	// on an executor built without WithActionEngine.
	ErrNoActionEngine = errors.New("no action engine configured")
	ErrValidation     = errors.New("validation failed")
)

// MissingParamsError reports every required parameter absent from a call,
// so the LLM can correct all of them in one retry.
type MissingParamsError struct {
	Names []string
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("missing required parameters: [%s]", strings.Join(e.Names, ", "))
}

// FaultError wraps a runtime failure raised inside a tool's execution
// (handler error, panic, engine failure). It is captured per call and never
// escapes the batch.
type FaultError struct {
	Err error
}

func (e *FaultError) Error() string {
	return "execution fault: " + e.Err.Error()
}

func (e *FaultError) Unwrap() error { return e.Err }

// IsFault returns true if err is or wraps a FaultError.
func IsFault(err error) bool {
	var fe *FaultError
	return errors.As(err, &fe)
}

// panicError wraps a recovered panic value for FaultError.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}

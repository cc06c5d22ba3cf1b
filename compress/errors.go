package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/bagobytes/format"
)

// Error kinds reported by the engines and the chunked codec. Every *EngineError
// matches exactly one of the first three through errors.Is.
var (
	// ErrEngineInit means the engine rejected its configuration.
	ErrEngineInit = errors.New("engine initialization failed")
	// ErrCompressionEngine means the compression engine failed mid-stream.
	ErrCompressionEngine = errors.New("compression engine failure")
	// ErrCorruptStream means the compressed input is malformed or truncated.
	ErrCorruptStream = errors.New("corrupt compressed stream")
	// ErrEngineReleased is returned when an engine is used after Release.
	ErrEngineReleased = errors.New("engine used after release")
)

// EngineError carries the engine status behind a failed operation.
type EngineError struct {
	Mode   format.EngineMode
	Kind   error
	Status format.Status
	Err    error
}

func (e *EngineError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s (%s)", e.Mode, e.Kind, e.Status)
	}

	return fmt.Sprintf("%s: %s (%s): %v", e.Mode, e.Kind, e.Status, e.Err)
}

// Unwrap exposes both the error kind and the underlying engine error.
func (e *EngineError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// streamErrorKind returns the kind a mid-stream failure maps to in the given mode.
func streamErrorKind(mode format.EngineMode) error {
	if mode == format.ModeInflate {
		return ErrCorruptStream
	}

	return ErrCompressionEngine
}

func newStreamError(mode format.EngineMode, status format.Status, err error) *EngineError {
	return &EngineError{
		Mode:   mode,
		Kind:   streamErrorKind(mode),
		Status: status,
		Err:    err,
	}
}

package compress

import "fmt"

// ValidationError reports a request rejected before any external process was
// spawned. No file is created or modified when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ToolError reports an external tool that exited non-zero or could not be
// started. Output carries the tool's diagnostic text when available.
type ToolError struct {
	Tool   string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s failed: %v, output: %s", e.Tool, e.Err, e.Output)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// MeasurementError reports an output file that could not be inspected after
// the external tool exited successfully.
type MeasurementError struct {
	Path string
	Err  error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("cannot measure output file %s: %v", e.Path, e.Err)
}

func (e *MeasurementError) Unwrap() error {
	return e.Err
}

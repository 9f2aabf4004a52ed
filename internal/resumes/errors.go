package resumes

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record exists for a requested id.
var ErrNotFound = errors.New("not found")

// FailureKind tags a pipeline failure with the step family that produced it.
type FailureKind string

const (
	KindUploadFailed         FailureKind = "UPLOAD_FAILED"
	KindConversionFailed     FailureKind = "CONVERSION_FAILED"
	KindExtractionFailed     FailureKind = "EXTRACTION_FAILED"
	KindAnalysisFailed       FailureKind = "ANALYSIS_FAILED"
	KindInvalidFeedbackShape FailureKind = "INVALID_FEEDBACK_SHAPE"
	KindPersistenceFailed    FailureKind = "PERSISTENCE_FAILED"
)

// RunError is a pipeline failure. Kind selects the client-facing category,
// Stage records where the run stopped, Err keeps the underlying cause.
type RunError struct {
	Kind  FailureKind
	Stage Stage
	Err   error
}

func (e *RunError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s at %s", e.Kind, e.Stage)
	}
	return fmt.Sprintf("%s at %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func runErr(kind FailureKind, stage Stage, err error) *RunError {
	return &RunError{Kind: kind, Stage: stage, Err: err}
}

package risk

import (
	"errors"
	"fmt"
)

var (
	// ErrPatientNotFound indicates the referenced patient does not exist.
	ErrPatientNotFound = errors.New("patient not found")
	// ErrNoVitals indicates the patient has no monitoring snapshot to
	// assess.
	ErrNoVitals = errors.New("no vital signs recorded for patient")
	// ErrVitalsRequired indicates a demo assessment was requested without a
	// vitals payload.
	ErrVitalsRequired = errors.New("vital signs payload is required")
)

// PredictionErrorKind distinguishes the ways a scoring invocation can fail.
type PredictionErrorKind int

const (
	// PredictionFailed: the scoring process exited non-zero.
	PredictionFailed PredictionErrorKind = iota
	// PredictionParse: the process exited zero but its output did not parse
	// to the expected structure.
	PredictionParse
	// PredictionTimeout: the process exceeded the allowed duration.
	PredictionTimeout
)

func (k PredictionErrorKind) String() string {
	switch k {
	case PredictionFailed:
		return "prediction failed"
	case PredictionParse:
		return "prediction parse error"
	case PredictionTimeout:
		return "prediction timeout"
	default:
		return "unknown prediction error"
	}
}

// PredictionError reports a scoring engine failure. Detail carries the
// engine's diagnostic (stderr) text; Output carries the raw unparsed stdout
// for parse failures.
type PredictionError struct {
	Kind   PredictionErrorKind
	Detail string
	Output string
}

func (e *PredictionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return e.Kind.String()
}

// PersistenceError reports that an assessment was computed but its audit
// record could not be saved. It is surfaced rather than swallowed: the
// audit trail is a hard requirement, so the caller must learn the record is
// missing.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("assessment computed but audit record was not saved: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

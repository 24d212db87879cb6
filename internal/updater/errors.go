package updater

import (
	"context"
	"errors"
	"fmt"

	"github.com/petasbytes/genie-annotate/internal/genie"
	"github.com/petasbytes/genie-annotate/internal/space"
)

// ErrMissingInput is returned when a required request field is blank.
var ErrMissingInput = errors.New("all fields are required")

// Step names the pipeline stage an error came from.
type Step string

const (
	StepInput   Step = "input"
	StepResolve Step = "resolve"
	StepFetch   Step = "fetch"
	StepDecode  Step = "decode"
	StepMutate  Step = "mutate"
	StepEncode  Step = "encode"
	StepPersist Step = "persist"
)

// StepError ties an error to the stage that produced it.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// StepOf returns the failing step of err, or "" when err is not a StepError.
func StepOf(err error) Step {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}

// Code is a short error class used in logs and telemetry.
type Code string

const (
	CodeUnknown  Code = "unknown"
	CodeInput    Code = "input"
	CodeNotFound Code = "not_found"
	CodeAuth     Code = "auth"
	CodeAPI      Code = "api"
	CodeNetwork  Code = "network"
	CodeProtocol Code = "protocol"
	CodeCancel   Code = "cancel"
)

// Classify maps err to a Code using sentinel and typed errors only.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CodeCancel
	}
	if errors.Is(err, ErrMissingInput) {
		return CodeInput
	}
	if genie.IsNotFound(err) || errors.Is(err, genie.ErrNoSpaces) {
		return CodeNotFound
	}
	if genie.IsAuth(err) {
		return CodeAuth
	}
	var apiErr *genie.APIError
	if errors.As(err, &apiErr) {
		return CodeAPI
	}
	var connErr *genie.ConnectionError
	if errors.As(err, &connErr) {
		return CodeNetwork
	}
	if errors.Is(err, space.ErrNoSerializedSpace) || errors.Is(err, space.ErrUnexpectedShape) {
		return CodeProtocol
	}
	if s := StepOf(err); s == StepDecode || s == StepEncode {
		return CodeProtocol
	}
	return CodeUnknown
}

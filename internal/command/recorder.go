package command

import "time"

//go:generate mockgen -source=recorder.go -destination=mocks/mocks.go -package=mocks Recorder

// Outcome labels one terminal state of the processing pipeline.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeUnknownCommand Outcome = "unknown_command"
	OutcomeInvalidParams  Outcome = "validation_error"
	OutcomeHandlerError   Outcome = "internal_error"
	OutcomeRequestError   Outcome = "request_error"
)

// Recorder observes processed commands, typically for metrics.
type Recorder interface {
	ObserveCommand(name string, outcome Outcome, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveCommand(string, Outcome, time.Duration) {}

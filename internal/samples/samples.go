// Package samples provides the demonstration commands served by the hello
// function endpoint.
package samples

import (
	"time"

	"nebula/internal/command"
)

// Components reported by the status command.
var Components = []string{"api", "database", "cache"}

// InfoSections selectable by the info command.
var InfoSections = []string{"system", "runtime", "memory"}

// MaxDelay bounds the delay command.
const MaxDelay = 5 * time.Second

// NewRegistry returns the sample command set. started is reported as the
// process start by the status command.
func NewRegistry(started time.Time) *command.Registry {
	return command.NewRegistry(
		hello(),
		status(started),
		info(),
		echo(),
		delay(),
	)
}

package samples

import (
	"context"
	"time"

	"nebula/internal/command"
	"nebula/internal/command/schema"
	"nebula/pkg/requestcontext"
)

// StatusReport is the status payload. Details is set when detailed=true.
type StatusReport struct {
	Component string         `json:"component"`
	Status    string         `json:"status"`
	Detailed  bool           `json:"detailed"`
	Details   *StatusDetails `json:"details,omitempty"`
}

// StatusDetails carries the detailed view of a component.
type StatusDetails struct {
	StartedAt     time.Time `json:"startedAt"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
	CheckedAt     time.Time `json:"checkedAt"`
}

func status(started time.Time) command.Registration {
	return command.Command("status", "Check system component status",
		schema.New(
			schema.Enum("component", Components,
				schema.Default("api"),
				schema.Description("Component to check"),
			),
			schema.Boolean("detailed",
				schema.Default(false),
				schema.Description("Return detailed status information"),
			),
		),
		func(ctx context.Context, p schema.Values) (any, error) {
			report := StatusReport{
				Component: p.String("component"),
				Status:    "operational",
				Detailed:  p.Bool("detailed"),
			}
			if report.Detailed {
				now := requestcontext.Now(ctx)
				report.Details = &StatusDetails{
					StartedAt:     started.UTC(),
					UptimeSeconds: int64(now.Sub(started).Seconds()),
					CheckedAt:     now.UTC(),
				}
			}
			return report, nil
		},
	)
}

package samples

import (
	"context"
	"time"

	"nebula/internal/command"
	"nebula/internal/command/schema"
)

// Delayed is the delay payload.
type Delayed struct {
	DelayedMs  int       `json:"delayedMs"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// delay waits before answering, standing in for a handler blocked on I/O.
// It returns early with the context error when the client goes away.
func delay() command.Registration {
	return command.Command("delay", "Respond after a simulated delay",
		schema.New(
			schema.Integer("ms",
				schema.Default(100),
				schema.Min(0),
				schema.Max(float64(MaxDelay.Milliseconds())),
				schema.Description("Delay in milliseconds"),
			),
		),
		func(ctx context.Context, p schema.Values) (any, error) {
			ms := p.Int("ms")
			started := time.Now()
			timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
			defer timer.Stop()

			select {
			case <-timer.C:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return Delayed{DelayedMs: ms, StartedAt: started.UTC(), FinishedAt: time.Now().UTC()}, nil
		},
	)
}

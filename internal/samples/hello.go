package samples

import (
	"context"

	"nebula/internal/command"
	"nebula/internal/command/envelope"
	"nebula/internal/command/schema"
	"nebula/pkg/requestcontext"
)

// Greeting is the hello payload.
type Greeting struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func hello() command.Registration {
	return command.Command("hello", "Simple greeting command with optional name parameter",
		schema.New(
			schema.String("name",
				schema.Default("World"),
				schema.Min(1),
				schema.Max(64),
				schema.Description("Name to greet"),
			),
		),
		func(ctx context.Context, p schema.Values) (any, error) {
			return Greeting{
				Message:   "Hello " + p.String("name") + "!",
				Timestamp: requestcontext.Now(ctx).UTC().Format(envelope.TimestampLayout),
			}, nil
		},
	)
}

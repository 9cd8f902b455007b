package samples

import (
	"context"
	"strings"

	"nebula/internal/command"
	"nebula/internal/command/schema"
)

// Echo is the echo payload.
type Echo struct {
	Message string `json:"message"`
	Length  int    `json:"length"`
}

func echo() command.Registration {
	return command.Command("echo", "Return the given message",
		schema.New(
			schema.String("message", schema.Max(1024), schema.Description("Message to echo back")),
			schema.Boolean("upper", schema.Default(false), schema.Description("Upper-case the message")),
		),
		func(_ context.Context, p schema.Values) (any, error) {
			msg := p.String("message")
			if p.Bool("upper") {
				msg = strings.ToUpper(msg)
			}
			return Echo{Message: msg, Length: len([]rune(msg))}, nil
		},
	)
}

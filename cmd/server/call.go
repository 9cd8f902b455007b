package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"nebula/internal/command/envelope"
	"nebula/internal/platform/config"
	"nebula/pkg/requestcontext"
)

// errCommandFailed is returned after a failed envelope has been printed.
type errCommandFailed struct {
	status int
	code   string
}

func (e errCommandFailed) Error() string {
	return fmt.Sprintf("command failed: %s (%d)", e.code, e.status)
}

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <command> [key=value...]",
		Short: "Run a sample command in-process and print its envelope",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			p, err := newSampleProcessor(cfg, slog.New(slog.DiscardHandler))
			if err != nil {
				return err
			}

			query, err := callQuery(cfg.SelectorKey, args[0], args[1:])
			if err != nil {
				return err
			}
			target := "/api/" + sampleFunction + "?" + query
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, target, nil)
			if err != nil {
				return fmt.Errorf("build request: %w", err)
			}
			req = req.WithContext(requestcontext.WithClientMetadata(req.Context(), "cli", "nebula-cli"))

			resp := p.Handle(req)
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(resp.Body)); err != nil {
				return err
			}
			if !resp.Envelope.Status {
				return failure(resp.Envelope)
			}
			return nil
		},
	}
}

// callQuery encodes the command name and key=value arguments as a raw query.
// Arguments keep their order so repeated keys resolve as they would over HTTP.
func callQuery(selectorKey, name string, args []string) (string, error) {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, url.QueryEscape(selectorKey)+"="+url.QueryEscape(name))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return "", fmt.Errorf("invalid argument %q: want key=value", arg)
		}
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	return strings.Join(parts, "&"), nil
}

func failure(env envelope.Envelope) error {
	if env.Error == nil {
		return errCommandFailed{status: http.StatusInternalServerError}
	}
	return errCommandFailed{status: env.Error.Status, code: env.Error.Code}
}

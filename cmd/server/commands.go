package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nebula/internal/command"
	"nebula/internal/platform/config"
	"nebula/internal/samples"
)

// Function endpoint served by the sample registry.
const sampleFunction = "hello"

// newRootCmd builds the command tree: serve, commands and call.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nebula",
		Short:         "Serve named commands over HTTP behind a uniform JSON envelope",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newCommandsCmd(), newCallCmd())
	return root
}

// newSampleProcessor builds the processor for the sample function endpoint.
func newSampleProcessor(cfg config.Server, logger *slog.Logger, opts ...command.Option) (*command.Processor, error) {
	opts = append([]command.Option{
		command.WithLogger(logger),
		command.WithSelectorKey(cfg.SelectorKey),
	}, opts...)
	return command.NewProcessor(samples.NewRegistry(time.Now()), opts...)
}

func newCommandsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "Print the command catalog of the sample function",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			p, err := newSampleProcessor(cfg, slog.New(slog.DiscardHandler))
			if err != nil {
				return err
			}
			return writeCatalog(cmd.OutOrStdout(), p.Catalog(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func writeCatalog(w io.Writer, cat command.Catalog, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cat)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cat); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: want json or yaml", format)
	}
}

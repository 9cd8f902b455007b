package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nebula/internal/command/envelope"
	"nebula/internal/command/params"
	"nebula/internal/command/schema"
	dErrors "nebula/pkg/domain-errors"
)

// HelpCommand is selected when no command is named and the registry is empty.
const HelpCommand = "help"

const (
	msgInternal       = "Internal server error"
	msgRequestFailure = "Request processing error"
)

// Processor turns HTTP requests into command invocations. It holds no
// per-request state and is safe for concurrent use.
type Processor struct {
	registry    *Registry
	selectorKey string
	logger      *slog.Logger
	recorder    Recorder
	tracer      trace.Tracer
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRecorder sets the outcome recorder.
func WithRecorder(rec Recorder) Option {
	return func(p *Processor) {
		if rec != nil {
			p.recorder = rec
		}
	}
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Processor) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// WithSelectorKey changes the query key naming the command.
func WithSelectorKey(key string) Option {
	return func(p *Processor) {
		if key != "" {
			p.selectorKey = key
		}
	}
}

// NewProcessor builds a processor over registry.
func NewProcessor(registry *Registry, opts ...Option) (*Processor, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	p := &Processor{
		registry:    registry,
		selectorKey: params.DefaultSelectorKey,
		logger:      slog.New(slog.DiscardHandler),
		recorder:    noopRecorder{},
		tracer:      otel.Tracer("nebula/internal/command"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Registry returns the registry the processor dispatches to.
func (p *Processor) Registry() *Registry { return p.registry }

// SelectorKey returns the query key naming the command.
func (p *Processor) SelectorKey() string { return p.selectorKey }

// ServeHTTP implements http.Handler.
func (p *Processor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := p.Handle(r)
	if err := resp.Write(w); err != nil {
		p.logger.WarnContext(r.Context(), "failed to write command response",
			"request_id", resp.Envelope.Metadata.RequestID,
			"error", err,
		)
	}
}

// Handle is the single entry point: it selects the command from the query
// string and processes it. Every path, including panics during command
// selection, yields a Response.
func (p *Processor) Handle(r *http.Request) (resp *Response) {
	req := envelope.FromHTTP(r)
	if r == nil {
		return p.fail(context.Background(), "", OutcomeRequestError, dErrors.CodeRequest, "request is required", req, nil)
	}
	ctx := r.Context()

	defer func() {
		if rec := recover(); rec != nil {
			resp = p.fail(ctx, "", OutcomeRequestError, dErrors.CodeRequest,
				recoveredMessage(rec, msgRequestFailure), req, nil)
		}
	}()

	if r.URL == nil {
		return p.fail(ctx, "", OutcomeRequestError, dErrors.CodeRequest, "request URL is required", req, nil)
	}
	rawQuery := r.URL.RawQuery
	name := p.SelectCommand(rawQuery)

	return p.ProcessCommand(ctx, name, params.Parse(rawQuery, p.selectorKey), r)
}

// SelectCommand resolves the command name: the selector value, else the first
// registered command, else HelpCommand.
func (p *Processor) SelectCommand(rawQuery string) string {
	if name := params.Selector(rawQuery, p.selectorKey); name != "" {
		return name
	}
	if first, ok := p.registry.First(); ok {
		return first
	}
	return HelpCommand
}

// ProcessCommand resolves, validates and invokes name with the raw parameter
// bag. r supplies envelope metadata and may be nil.
func (p *Processor) ProcessCommand(ctx context.Context, name string, bag params.Bag, r *http.Request) (resp *Response) {
	req := envelope.FromHTTP(r)

	ctx, span := p.tracer.Start(ctx, "command."+p.metricName(name),
		trace.WithAttributes(attribute.String("command.name", name)))
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			resp = p.fail(ctx, name, OutcomeHandlerError, dErrors.CodeInternal,
				recoveredMessage(rec, msgInternal), req, nil)
		}
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		if !resp.Envelope.Status {
			span.SetStatus(codes.Error, resp.Envelope.Error.Code)
		}
	}()

	def, ok := p.registry.Get(name)
	if !ok {
		msg := fmt.Sprintf("Unknown command: %s. Available commands: %s",
			name, strings.Join(p.registry.Names(), ", "))
		return p.fail(ctx, name, OutcomeUnknownCommand, dErrors.CodeUnknownCommand, msg, req, nil)
	}

	parsed := def.Schema.SafeParse(bag)
	if !parsed.Success {
		env := envelope.ValidationFailure(parsed.Issues, req, map[string]any{"command": name})
		p.logger.WarnContext(ctx, "command parameters rejected",
			"request_id", env.Metadata.RequestID,
			"command", name,
			"issues", len(parsed.Issues),
		)
		p.recorder.ObserveCommand(p.metricName(name), OutcomeInvalidParams, time.Since(req.Started))
		return newResponse(env, req)
	}

	result, err := invoke(ctx, def.Handler, parsed.Data)
	if err != nil {
		span.RecordError(err)
		return p.fail(ctx, name, OutcomeHandlerError, dErrors.CodeInternal, handlerMessage(err), req, err)
	}

	env := envelope.Success(result, req, map[string]any{"command": name})
	p.logger.InfoContext(ctx, "command processed",
		"request_id", env.Metadata.RequestID,
		"command", name,
		"duration_ms", durationMs(env),
	)
	p.recorder.ObserveCommand(p.metricName(name), OutcomeSuccess, time.Since(req.Started))
	return newResponse(env, req)
}

func (p *Processor) fail(
	ctx context.Context,
	name string,
	outcome Outcome,
	code dErrors.Code,
	msg string,
	req envelope.Request,
	cause error,
) *Response {
	var extra map[string]any
	if name != "" {
		extra = map[string]any{"command": name}
	}
	env := envelope.Failure(code, msg, req, extra)

	level := slog.LevelWarn
	if dErrors.ToHTTPStatus(code) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []any{
		"request_id", env.Metadata.RequestID,
		"command", name,
		"code", env.Error.Code,
		"message", msg,
	}
	if cause != nil {
		attrs = append(attrs, "error", cause)
	}
	p.logger.Log(ctx, level, "command failed", attrs...)

	p.recorder.ObserveCommand(p.metricName(name), outcome, time.Since(req.Started))
	return newResponse(env, req)
}

// metricName keeps client-supplied names out of metric labels.
func (p *Processor) metricName(name string) string {
	if p.registry.Has(name) {
		return name
	}
	return "unknown"
}

// invoke is the single execution path for handlers: panics become errors.
func invoke(ctx context.Context, h HandlerFunc, values schema.Values) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &panicError{value: rec}
		}
	}()
	return h(ctx, values)
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return recoveredMessage(e.value, msgInternal)
}

// recoveredMessage uses the message of error values and fallback otherwise.
func recoveredMessage(rec any, fallback string) string {
	if err, ok := rec.(error); ok && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

func handlerMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgInternal
}

func durationMs(env envelope.Envelope) int64 {
	if env.Metadata.DurationMs == nil {
		return 0
	}
	return *env.Metadata.DurationMs
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"nebula/internal/command"
)

// Metrics holds the Prometheus collectors of the command pipeline.
type Metrics struct {
	// Processed commands by function, command and outcome
	CommandsTotal *prometheus.CounterVec

	// End-to-end processing latency by function and command
	CommandDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nebula_commands_total",
			Help: "Total processed commands by function, command and outcome",
		}, []string{"function", "command", "outcome"}),

		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nebula_command_duration_seconds",
			Help:    "Duration of command processing including validation and handler execution",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"function", "command"}),
	}
}

// ForFunction returns a command.Recorder labelled with a function endpoint name.
func (m *Metrics) ForFunction(function string) command.Recorder {
	return &recorder{metrics: m, function: function}
}

// IncrementCommand records a processed command.
func (m *Metrics) IncrementCommand(function, name string, outcome command.Outcome) {
	if m != nil {
		m.CommandsTotal.WithLabelValues(function, name, string(outcome)).Inc()
	}
}

// ObserveCommandDuration records how long a command took.
func (m *Metrics) ObserveCommandDuration(function, name string, d time.Duration) {
	if m != nil {
		m.CommandDuration.WithLabelValues(function, name).Observe(d.Seconds())
	}
}

type recorder struct {
	metrics  *Metrics
	function string
}

func (r *recorder) ObserveCommand(name string, outcome command.Outcome, d time.Duration) {
	r.metrics.IncrementCommand(r.function, name, outcome)
	r.metrics.ObserveCommandDuration(r.function, name, d)
}

package samples

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula/internal/command"
	"nebula/internal/command/envelope"
)

func newProcessor(t *testing.T) *command.Processor {
	t.Helper()
	p, err := command.NewProcessor(NewRegistry(time.Now().Add(-time.Minute)))
	require.NoError(t, err)
	return p
}

func call(t *testing.T, p *command.Processor, target string) (int, envelope.Envelope, string) {
	t.Helper()
	resp := p.Handle(httptest.NewRequest(http.MethodGet, target, nil))
	var env envelope.Envelope
	require.NoError(t, json.Unmarshal(resp.Body, &env))
	return resp.StatusCode, env, string(resp.Body)
}

func TestRegistryContents(t *testing.T) {
	r := NewRegistry(time.Now())
	assert.Equal(t, []string{"hello", "status", "info", "echo", "delay"}, r.Names())
}

func TestHelloCommand(t *testing.T) {
	p := newProcessor(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		contains   string
	}{
		{name: "default greeting", target: "/api/hello?cmd=hello", wantStatus: http.StatusOK, contains: "Hello World!"},
		{name: "custom name greeting", target: "/api/hello?cmd=hello&name=Alice", wantStatus: http.StatusOK, contains: "Hello Alice!"},
		{name: "no selector defaults to hello", target: "/api/hello", wantStatus: http.StatusOK, contains: "Hello World!"},
		{name: "empty name rejected", target: "/api/hello?cmd=hello&name=", wantStatus: http.StatusUnprocessableEntity, contains: "at least 1 character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, body := call(t, p, tt.target)
			assert.Equal(t, tt.wantStatus, code)
			assert.Contains(t, body, tt.contains)
		})
	}
}

func TestStatusCommand(t *testing.T) {
	p := newProcessor(t)

	t.Run("default status check", func(t *testing.T) {
		code, env, _ := call(t, p, "/api/hello?cmd=status")
		require.Equal(t, http.StatusOK, code)
		payload := env.Payload.(map[string]any)
		assert.Equal(t, "api", payload["component"])
		assert.Equal(t, "operational", payload["status"])
		assert.Equal(t, false, payload["detailed"])
		assert.NotContains(t, payload, "details")
	})

	t.Run("database status with details", func(t *testing.T) {
		code, env, _ := call(t, p, "/api/hello?cmd=status&component=database&detailed=true")
		require.Equal(t, http.StatusOK, code)
		payload := env.Payload.(map[string]any)
		assert.Equal(t, "database", payload["component"])
		assert.Equal(t, true, payload["detailed"])
		details := payload["details"].(map[string]any)
		assert.GreaterOrEqual(t, details["uptimeSeconds"].(float64), 59.0)
	})

	t.Run("unknown component rejected", func(t *testing.T) {
		code, env, _ := call(t, p, "/api/hello?cmd=status&component=disk")
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestInfoCommand(t *testing.T) {
	p := newProcessor(t)

	code, env, _ := call(t, p, "/api/hello?cmd=info&include=system,runtime,memory")
	require.Equal(t, http.StatusOK, code)
	payload := env.Payload.(map[string]any)
	assert.Contains(t, payload, "system")
	assert.Contains(t, payload, "runtime")
	assert.Contains(t, payload, "memory")

	code, env, _ = call(t, p, "/api/hello?cmd=info&include=runtime")
	require.Equal(t, http.StatusOK, code)
	payload = env.Payload.(map[string]any)
	assert.Contains(t, payload, "runtime")
	assert.NotContains(t, payload, "system")

	code, _, _ = call(t, p, "/api/hello?cmd=info&include=system,disk")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestEchoCommand(t *testing.T) {
	p := newProcessor(t)

	code, env, _ := call(t, p, "/api/hello?cmd=echo")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env, _ = call(t, p, "/api/hello?cmd=echo&message=h%C3%A9llo&upper=true")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"message": "HÉLLO", "length": 5.0}, env.Payload)
}

func TestDelayCommand(t *testing.T) {
	p := newProcessor(t)

	code, env, _ := call(t, p, "/api/hello?cmd=delay&ms=1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, env.Payload.(map[string]any)["delayedMs"])

	code, _, _ = call(t, p, "/api/hello?cmd=delay&ms=6000")
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/hello?cmd=delay&ms=5000", nil).WithContext(ctx)
	resp := p.Handle(req)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", resp.Envelope.Error.Code)
	assert.Equal(t, context.Canceled.Error(), resp.Envelope.Error.Message)
}

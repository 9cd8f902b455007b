// Package envelope builds the uniform JSON response wrapper returned for
// every command request.
//
//	{"payload": ..., "status": true, "metadata": {"requestId": "...", "timestamp": "..."}}
//
// status is true exactly when error is absent; failed envelopes carry a null
// payload.
package envelope

import (
	"encoding/json"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	dErrors "nebula/pkg/domain-errors"
	"nebula/pkg/requestcontext"
)

// TimestampLayout is ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Error is the failure part of an envelope.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
}

// Envelope is the response body of every command request.
type Envelope struct {
	Payload  any      `json:"payload"`
	Status   bool     `json:"status"`
	Metadata Metadata `json:"metadata"`
	Error    *Error   `json:"error,omitempty"`
}

// Request holds the request-derived inputs of the metadata block.
type Request struct {
	// ID is used as requestId; a UUID is generated when empty.
	ID     string
	Path   string
	Method string
	// Started is when handling began; durationMs is omitted when zero.
	Started time.Time
}

// FromHTTP extracts the metadata inputs from r. The request ID and start time
// come from the request context when middleware set them.
func FromHTTP(r *http.Request) Request {
	if r == nil {
		return Request{Started: time.Now()}
	}
	ctx := r.Context()
	req := Request{
		ID:      requestcontext.RequestID(ctx),
		Method:  r.Method,
		Started: requestcontext.Now(ctx),
	}
	if r.URL != nil {
		req.Path = r.URL.Path
	}
	return req
}

// New assembles an envelope. extra is merged into the metadata block.
func New(payload any, e *Error, req Request, extra map[string]any) Envelope {
	now := time.Now()
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	md := Metadata{
		RequestID: id,
		Timestamp: now.UTC().Format(TimestampLayout),
		Path:      req.Path,
		Method:    req.Method,
	}
	if !req.Started.IsZero() {
		ms := now.Sub(req.Started).Milliseconds()
		if ms < 0 {
			ms = 0
		}
		md.DurationMs = &ms
	}
	if len(extra) > 0 {
		md.Extra = maps.Clone(extra)
	}
	if e != nil {
		payload = nil
	}
	return Envelope{
		Payload:  payload,
		Status:   e == nil,
		Metadata: md,
		Error:    e,
	}
}

// Success wraps a handler result.
func Success(payload any, req Request, extra map[string]any) Envelope {
	return New(payload, nil, req, extra)
}

// Failure builds an error envelope whose status and code derive from code.
func Failure(code dErrors.Code, message string, req Request, extra map[string]any) Envelope {
	return New(nil, &Error{
		Message: message,
		Status:  dErrors.ToHTTPStatus(code),
		Code:    code.EnvelopeCode(),
	}, req, extra)
}

// ValidationFailure builds the 422 envelope; issues land in metadata.validation.
func ValidationFailure(issues any, req Request, extra map[string]any) Envelope {
	md := map[string]any{"validation": issues}
	maps.Copy(md, extra)
	return Failure(dErrors.CodeValidation, "Validation failed", req, md)
}

// HTTPStatus is the status code the envelope should be served with.
func (e Envelope) HTTPStatus() int {
	if e.Error != nil && e.Error.Status != 0 {
		return e.Error.Status
	}
	if e.Error != nil {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// Marshal encodes the envelope.
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

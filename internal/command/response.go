package command

import (
	"net/http"

	"nebula/internal/command/envelope"
	dErrors "nebula/pkg/domain-errors"
	"nebula/pkg/platform/httputil"
)

// Response is a fully serialized command response. Building one never fails:
// a payload that cannot be encoded is replaced by an INTERNAL_ERROR envelope.
type Response struct {
	StatusCode int
	Header     http.Header
	Envelope   envelope.Envelope
	Body       []byte
}

func newResponse(env envelope.Envelope, req envelope.Request) *Response {
	body, err := env.Marshal()
	if err != nil {
		env = envelope.Failure(dErrors.CodeInternal, "response serialization failed: "+err.Error(), req, nil)
		body, _ = env.Marshal()
	}
	return &Response{
		StatusCode: env.HTTPStatus(),
		Header:     httputil.CommandHeaders(),
		Envelope:   env,
		Body:       body,
	}
}

// Write sends the response.
func (r *Response) Write(w http.ResponseWriter) error {
	h := w.Header()
	for k, vs := range r.Header {
		h[k] = append([]string(nil), vs...)
	}
	w.WriteHeader(r.StatusCode)
	_, err := w.Write(r.Body)
	return err
}

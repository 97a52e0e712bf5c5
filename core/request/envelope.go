package request

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/campus/core"
)

// Envelope is the JSON body every endpoint of the API answers with.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`

	status int
	err    error
}

// Failure returns the failed Envelope describing err.
func Failure(err error) Envelope {
	env := Envelope{Message: core.Message(err), err: err}
	if apiErr, ok := errors.Cause(err).(*core.APIError); ok {
		env.status = apiErr.Status
	}
	return env
}

// ParseEnvelope decodes a response body. Non-2xx statuses and `success: false` make a failed Envelope.
func ParseEnvelope(status int, body []byte) Envelope {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		msg := "invalid response: " + err.Error()
		if !is2xx(status) {
			msg = strings.ToLower(http.StatusText(status))
		}
		return Failure(&core.APIError{Status: status, Message: msg})
	}
	env.status = status

	if !is2xx(status) || !env.Success {
		env.Success = false
		env.err = &core.APIError{Status: status, Message: env.Message}
		if env.Message == "" {
			env.Message = env.err.Error()
		}
	}
	return env
}

// Err returns nil for a successful Envelope, the typed failure otherwise.
func (e Envelope) Err() error {
	if e.Success {
		return nil
	}
	if e.err != nil {
		return e.err
	}
	return &core.APIError{Status: e.status, Message: e.Message}
}

// Status returns the HTTP status the Envelope came with (0 when no response was received).
func (e Envelope) Status() int { return e.status }

// Decode unmarshals the data of a successful Envelope into v.
func (e Envelope) Decode(v interface{}) error {
	if err := e.Err(); err != nil {
		return err
	}
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return &core.APIError{Status: e.status, Message: "invalid response data: " + err.Error()}
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

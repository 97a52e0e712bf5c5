package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/sendgrid/rest"

	"github.com/trezcool/campus/core/auth"
)

// SignedIn returns a ready session for a user of the given role and school.
func SignedIn(role auth.Role, schoolID string) *auth.Session {
	sess := auth.NewSession()
	sess.SignIn(auth.User{ID: "u-" + string(role), Name: string(role), Role: role, SchoolID: schoolID}, "test-token")
	return sess
}

// Envelope returns the JSON envelope body the API answers with.
func Envelope(t *testing.T, success bool, data interface{}, message string) string {
	t.Helper()
	body := map[string]interface{}{"success": success}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Envelope() failed: %v", err)
	}
	return string(raw)
}

// RespondFunc answers one recorded request.
type RespondFunc func(req rest.Request) (*rest.Response, error)

// Doer is a fake REST client recording every request it is sent.
type Doer struct {
	mu      sync.Mutex
	reqs    []rest.Request
	Respond RespondFunc
}

func NewDoer(respond RespondFunc) *Doer {
	return &Doer{Respond: respond}
}

// Reply returns a RespondFunc always answering status and body.
func Reply(status int, body string) RespondFunc {
	return func(rest.Request) (*rest.Response, error) {
		return &rest.Response{StatusCode: status, Body: body}, nil
	}
}

// ReplyOK returns a RespondFunc answering a successful envelope of data.
func ReplyOK(t *testing.T, data interface{}) RespondFunc {
	return Reply(http.StatusOK, Envelope(t, true, data, ""))
}

func (d *Doer) SendWithContext(ctx context.Context, req rest.Request) (*rest.Response, error) {
	d.mu.Lock()
	d.reqs = append(d.reqs, req)
	respond := d.Respond
	d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return respond(req)
}

// Use replaces the RespondFunc answering the next requests.
func (d *Doer) Use(respond RespondFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Respond = respond
}

// Requests returns a copy of the recorded requests.
func (d *Doer) Requests() []rest.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]rest.Request(nil), d.reqs...)
}

// Last returns the last recorded request.
func (d *Doer) Last(t *testing.T) rest.Request {
	t.Helper()
	reqs := d.Requests()
	if len(reqs) == 0 {
		t.Fatal("Last(): no request was sent")
	}
	return reqs[len(reqs)-1]
}

// Package clienttest provides an in-memory client.Requester for tests of
// code that talks to the PlanA API.
package clienttest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/plana/internal/client/client"
)

// Call is one recorded request.
type Call struct {
	Method string
	Path   string
	Body   any
	Form   *client.Multipart
}

// Fake records every call and answers from canned responses keyed by
// "METHOD path". Unknown GETs fail with 404; unknown writes succeed empty.
type Fake struct {
	Calls     []Call
	Responses map[string]any
	Errors    map[string]error
}

func New() *Fake {
	return &Fake{Responses: map[string]any{}, Errors: map[string]error{}}
}

// On registers the JSON-encodable response for method and path.
func (f *Fake) On(method, path string, response any) *Fake {
	f.Responses[method+" "+path] = response
	return f
}

// Fail makes method and path return err.
func (f *Fake) Fail(method, path string, err error) *Fake {
	f.Errors[method+" "+path] = err
	return f
}

// Paths returns "METHOD path" for each recorded call, in order.
func (f *Fake) Paths() []string {
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

// Count returns how many calls matched method and path.
func (f *Fake) Count(method, path string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (f *Fake) Get(ctx context.Context, path string, out any) error {
	return f.handle(http.MethodGet, path, nil, nil, out)
}

func (f *Fake) Post(ctx context.Context, path string, body, out any) error {
	return f.handle(http.MethodPost, path, body, nil, out)
}

func (f *Fake) Patch(ctx context.Context, path string, body, out any) error {
	return f.handle(http.MethodPatch, path, body, nil, out)
}

func (f *Fake) Delete(ctx context.Context, path string) error {
	return f.handle(http.MethodDelete, path, nil, nil, nil)
}

func (f *Fake) PostMultipart(ctx context.Context, path string, form client.Multipart, out any) error {
	return f.handle(http.MethodPost, path, nil, &form, out)
}

func (f *Fake) handle(method, path string, body any, form *client.Multipart, out any) error {
	key := method + " " + path
	f.Calls = append(f.Calls, Call{Method: method, Path: path, Body: body, Form: form})

	if err, ok := f.Errors[key]; ok {
		return err
	}

	resp, ok := f.Responses[key]
	if !ok {
		if method == http.MethodGet {
			return &client.HTTPError{Method: method, Path: path, StatusCode: http.StatusNotFound}
		}
		return nil
	}
	if out == nil {
		return nil
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("clienttest: encode %s: %w", key, err)
	}
	return json.Unmarshal(b, out)
}

// BodyJSON re-encodes the recorded body of call i as a generic map, which
// makes assertions independent of the concrete Go type that was sent.
func (f *Fake) BodyJSON(i int) map[string]any {
	b, err := json.Marshal(f.Calls[i].Body)
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	return m
}

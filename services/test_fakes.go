package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/mireles/vecino/core"
)

// FakeTransport is a test-only core.Transport. Responses are registered
// per METHOD PATH; unmatched requests return 404. It records every call
// and exposes error injection, mirroring how the session and query
// layers see the real transport.
type FakeTransport struct {
	mu        sync.Mutex
	responses map[string]any
	errs      map[string]error
	calls     []string
}

var _ core.Transport = (*FakeTransport)(nil)

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		responses: make(map[string]any),
		errs:      make(map[string]error),
	}
}

// Respond registers the value returned for method+path.
func (f *FakeTransport) Respond(method, path string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = value
}

// Fail makes method+path return err.
func (f *FakeTransport) Fail(method, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method+" "+path] = err
}

// Calls returns every "METHOD PATH" seen, in order.
func (f *FakeTransport) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times method+path was requested.
func (f *FakeTransport) CallCount(method, path string) int {
	key := method + " " + path
	n := 0
	for _, call := range f.Calls() {
		if call == key {
			n++
		}
	}
	return n
}

func (f *FakeTransport) roundTrip(method, path string, out any) error {
	f.mu.Lock()
	key := method + " " + path
	f.calls = append(f.calls, key)
	err, failed := f.errs[key]
	value, ok := f.responses[key]
	f.mu.Unlock()

	if failed {
		return err
	}
	if !ok {
		return &core.APIError{Status: http.StatusNotFound, Detail: fmt.Sprintf("no fake response for %s", key)}
	}
	if out == nil {
		return nil
	}

	// Round-trip through JSON so fakes behave like the wire.
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (f *FakeTransport) Get(_ context.Context, path string, _ url.Values, out any) error {
	return f.roundTrip(http.MethodGet, path, out)
}

func (f *FakeTransport) Post(_ context.Context, path string, _ url.Values, _, out any) error {
	return f.roundTrip(http.MethodPost, path, out)
}

func (f *FakeTransport) Put(_ context.Context, path string, _, out any) error {
	return f.roundTrip(http.MethodPut, path, out)
}

func (f *FakeTransport) Delete(_ context.Context, path string) error {
	return f.roundTrip(http.MethodDelete, path, nil)
}

// FakeCredentialStore is a test-only core.CredentialStore holding the
// token in memory, with injectable errors.
type FakeCredentialStore struct {
	mu       sync.Mutex
	token    string
	loadErr  error
	storeErr error
}

var _ core.CredentialStore = (*FakeCredentialStore)(nil)

func NewFakeCredentialStore() *FakeCredentialStore {
	return &FakeCredentialStore{}
}

func (f *FakeCredentialStore) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *FakeCredentialStore) FailLoad(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadErr = err
}

func (f *FakeCredentialStore) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return "", f.loadErr
	}
	if f.token == "" {
		return "", core.ErrNoCredential
	}
	return f.token, nil
}

func (f *FakeCredentialStore) Store(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storeErr != nil {
		return f.storeErr
	}
	f.token = token
	return nil
}

func (f *FakeCredentialStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	return nil
}

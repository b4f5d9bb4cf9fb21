package vecino

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/services"
)

type stubTransport struct{}

func (stubTransport) Get(_ context.Context, _ string, _ url.Values, _ any) error { return nil }
func (stubTransport) Post(_ context.Context, _ string, _ url.Values, _, _ any) error {
	return nil
}
func (stubTransport) Put(_ context.Context, _ string, _, _ any) error { return nil }
func (stubTransport) Delete(_ context.Context, _ string) error        { return nil }

func TestNewShouldRequireBaseURLOrTransport(t *testing.T) {
	_, err := New(Config{})

	if !errors.Is(err, ErrBaseURLRequired) {
		t.Errorf("Expected ErrBaseURLRequired, got %v", err)
	}
}

func TestNewShouldAcceptCustomTransportWithoutBaseURL(t *testing.T) {
	hub, err := New(Config{HTTP: stubTransport{}})

	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if hub.Sessions == nil || hub.Queries == nil {
		t.Fatal("Expected session manager and query client wired")
	}
	if hub.Ideas == nil || hub.Alerts == nil || hub.Marketplace == nil || hub.Expenses == nil || hub.Users == nil {
		t.Fatal("Expected every domain module wired")
	}
}

func TestNewShouldStartSessionUninitialized(t *testing.T) {
	hub, err := New(Config{BaseURL: "http://localhost:8000"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if hub.Session().State() != StateUninitialized {
		t.Errorf("Expected uninitialized session, got %v", hub.Session().State())
	}
}

func TestNewShouldUseInjectedCache(t *testing.T) {
	// Arrange
	cache := NewInMemoryCache(CacheConfig{})
	hub, err := New(Config{HTTP: stubTransport{}, Cache: cache})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Act: prime the injected cache through the hub's query client.
	hub.Queries.Ideas(context.Background(), services.IdeaListOptions{})

	// Assert
	if cache.Len() == 0 {
		t.Error("Expected the injected cache to be used")
	}
}

func TestIsUnauthorizedShouldMatchAPIErrors(t *testing.T) {
	err := &APIError{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"}

	if !IsUnauthorized(err) {
		t.Error("Expected 401 APIError to report unauthorized")
	}
	if IsUnauthorized(&APIError{Status: http.StatusNotFound}) {
		t.Error("Expected non-401 APIError to not report unauthorized")
	}
	if IsUnauthorized(errors.New("plain")) {
		t.Error("Expected plain error to not report unauthorized")
	}
}

var _ core.Transport = stubTransport{}

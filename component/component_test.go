package component

import (
	"context"
	"fmt"
	"testing"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}

func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}

func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	c := &mockComponent{name: "http-server", health: Health{Name: "http-server", Status: StatusHealthy}}

	if err := r.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "watcher"})

	err := r.Register(&mockComponent{name: "watcher"})
	if err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "watcher"})

	got := r.Get("watcher")
	if got == nil {
		t.Fatal("expected to get registered component")
	}
	if got.Name() != "watcher" {
		t.Errorf("expected 'watcher', got %q", got.Name())
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unregistered component")
	}
}

func TestStartAllOrder(t *testing.T) {
	r := NewRegistry()
	order := []string{}

	r.Register(&mockComponent{name: "http-server", startOrder: &order})
	r.Register(&mockComponent{name: "watcher", startOrder: &order})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}

	if len(order) != 2 || order[0] != "http-server" || order[1] != "watcher" {
		t.Errorf("expected start order [http-server, watcher], got %v", order)
	}
}

func TestStartAllFailureStopsStarted(t *testing.T) {
	r := NewRegistry()
	stops := []string{}

	r.Register(&mockComponent{name: "http-server", stopOrder: &stops})
	r.Register(&mockComponent{name: "watcher", startErr: fmt.Errorf("no such directory")})

	err := r.StartAll(context.Background())
	if err == nil {
		t.Fatal("expected error from StartAll")
	}
	if len(stops) != 1 || stops[0] != "http-server" {
		t.Errorf("expected started components stopped on failure, got stops %v", stops)
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r := NewRegistry()
	order := []string{}

	r.Register(&mockComponent{name: "http-server", stopOrder: &order})
	r.Register(&mockComponent{name: "watcher", stopOrder: &order})
	r.Register(&mockComponent{name: "telemetry", stopOrder: &order})

	r.StartAll(context.Background())
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	if len(order) != 3 || order[0] != "telemetry" || order[1] != "watcher" || order[2] != "http-server" {
		t.Errorf("expected reverse stop order, got %v", order)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := NewRegistry()
	order := []string{}
	r.Register(&mockComponent{name: "watcher", stopOrder: &order})

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected 0 stops for unstarted components, got %d", len(order))
	}
}

func TestStopAllCollectsErrors(t *testing.T) {
	r := NewRegistry()
	stops := []string{}
	r.Register(&mockComponent{name: "http-server", stopErr: fmt.Errorf("stop failed"), stopOrder: &stops})
	r.Register(&mockComponent{name: "watcher", stopOrder: &stops})
	r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil {
		t.Error("expected error from StopAll")
	}
	if len(stops) != 2 {
		t.Errorf("expected all components stopped despite error, got %v", stops)
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{
		name:   "http-server",
		health: Health{Name: "http-server", Status: StatusHealthy},
	})
	r.Register(&mockComponent{
		name:   "watcher",
		health: Health{Name: "watcher", Status: StatusUnhealthy, Message: "not running"},
	})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy {
		t.Errorf("expected http-server healthy, got %s", results[0].Status)
	}
	if results[1].Status != StatusUnhealthy || results[1].Message != "not running" {
		t.Errorf("expected watcher unhealthy, got %+v", results[1])
	}
}

func TestHealthStatusConstants(t *testing.T) {
	if StatusHealthy != "healthy" || StatusUnhealthy != "unhealthy" || StatusDegraded != "degraded" {
		t.Errorf("unexpected status constants: %s %s %s", StatusHealthy, StatusUnhealthy, StatusDegraded)
	}
}

package watch

import (
	"context"

	"github.com/skillsenselab/diascribe/component"
)

const componentName = "watcher"

var _ component.Component = (*Component)(nil)

// Component wraps Watcher to implement component.Component.
type Component struct {
	watcher *Watcher
}

// NewComponent returns a component.Component backed by the given Watcher.
func NewComponent(w *Watcher) *Component {
	return &Component{watcher: w}
}

// Name returns the component name used for registration.
func (c *Component) Name() string { return componentName }

// Start begins watching in the background.
func (c *Component) Start(ctx context.Context) error {
	return c.watcher.Start(ctx)
}

// Stop shuts the watcher down and drains queued recordings.
func (c *Component) Stop(ctx context.Context) error {
	return c.watcher.Stop(ctx)
}

// Health reports degraded when the job queue is saturated, since new
// recordings are being dropped at that point.
func (c *Component) Health(ctx context.Context) component.Health {
	if !c.watcher.Running() {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: "watcher is not running",
		}
	}
	if c.watcher.QueueDepth() >= queueCapacity {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusDegraded,
			Message: "job queue is full, recordings may be dropped",
		}
	}
	return component.Health{
		Name:   componentName,
		Status: component.StatusHealthy,
	}
}

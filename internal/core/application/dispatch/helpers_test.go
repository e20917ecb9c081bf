package dispatch_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var startOfShift = time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: startOfShift}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) assignments() []events.BatchAssigned {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []events.BatchAssigned
	for _, e := range p.events {
		if a, ok := e.(events.BatchAssigned); ok {
			out = append(out, a)
		}
	}
	return out
}

func (p *recordingPublisher) statusChanges() []events.OrderStatusChanged {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []events.OrderStatusChanged
	for _, e := range p.events {
		if c, ok := e.(events.OrderStatusChanged); ok {
			out = append(out, c)
		}
	}
	return out
}

type fixture struct {
	coordinator *dispatch.Coordinator
	clock       *fakeClock
	publisher   *recordingPublisher
}

func newFixture(t *testing.T, maxSize int, maxWait time.Duration) fixture {
	t.Helper()
	policy, err := services.NewBatchPolicy(maxSize, maxWait)
	require.NoError(t, err)

	clock := newFakeClock()
	publisher := &recordingPublisher{}
	c := dispatch.NewCoordinator(dispatch.Config{
		Classifier: zone.DefaultClassifier(),
		Policy:     policy,
		Clock:      clock,
		Publisher:  publisher,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return fixture{coordinator: c, clock: clock, publisher: publisher}
}

// Points a few hundred metres from the default hub.
var coordinates = map[zone.Zone][2]float64{
	zone.NW: {zone.DefaultHubLat + 0.01, zone.DefaultHubLon - 0.01},
	zone.NE: {zone.DefaultHubLat + 0.01, zone.DefaultHubLon + 0.01},
	zone.SW: {zone.DefaultHubLat - 0.01, zone.DefaultHubLon - 0.01},
	zone.SE: {zone.DefaultHubLat - 0.01, zone.DefaultHubLon + 0.01},
}

func submitRequest(z zone.Zone, key *float64) dispatch.SubmitOrderRequest {
	at := coordinates[z]
	return dispatch.SubmitOrderRequest{
		CustomerID:  "customer-" + z.String(),
		Items:       []dispatch.ItemRequest{{ProductID: "margherita", Quantity: 2, UnitPrice: 350}},
		Lat:         at[0],
		Lon:         at[1],
		SequenceKey: key,
	}
}

func ptr[T any](v T) *T {
	return &v
}

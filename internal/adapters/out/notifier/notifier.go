// Package notifier pushes dispatch events to drivers and customers over Redis
// Pub/Sub. Each driver and each customer has its own channel, which the messaging
// gateways subscribe to.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "dispatch"

// DriverChannel is the channel a driver's batch assignments are published on.
func DriverChannel(driverID kernel.UUID) string {
	return channelPrefix + ":driver:" + driverID.String()
}

// CustomerChannel is the channel a customer's order updates are published on.
func CustomerChannel(customerID string) string {
	return channelPrefix + ":customer:" + customerID
}

// DriverNotification is what a driver receives when a batch is assigned: the stops
// in delivery order with the code to read back at each door.
type DriverNotification struct {
	Batch string             `json:"batch"`
	Zone  string             `json:"zone"`
	Stops []DriverStopNotice `json:"stops"`
	At    time.Time          `json:"at"`
}

type DriverStopNotice struct {
	Sequence         int     `json:"sequence"`
	Order            string  `json:"order"`
	ConfirmationCode string  `json:"confirmation_code"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	Total            float64 `json:"total"`
}

// CustomerNotification is what a customer receives on every status change.
type CustomerNotification struct {
	Order  string    `json:"order"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// Notifier is an EventPublisher backed by Redis Pub/Sub.
type Notifier struct {
	client redis.UniversalClient
}

func New(client redis.UniversalClient) *Notifier {
	return &Notifier{client: client}
}

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (n *Notifier) Publish(ctx context.Context, event events.Event) error {
	var (
		channel string
		payload any
	)
	switch e := event.(type) {
	case events.BatchAssigned:
		channel, payload = DriverChannel(e.DriverID), driverNotification(e)
	case events.OrderStatusChanged:
		if e.CustomerID == "" {
			return nil
		}
		channel, payload = CustomerChannel(e.CustomerID), CustomerNotification{
			Order:  e.OrderRef,
			Status: e.Status.String(),
			At:     e.ChangedAt,
		}
	default:
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err = n.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("failed to notify %s: %w", channel, err)
	}
	return nil
}

func driverNotification(e events.BatchAssigned) DriverNotification {
	stops := make([]DriverStopNotice, len(e.Stops))
	for i, s := range e.Stops {
		stops[i] = DriverStopNotice{
			Sequence:         s.Sequence,
			Order:            s.OrderRef,
			ConfirmationCode: s.ConfirmationCode,
			Lat:              s.Location.Lat(),
			Lon:              s.Location.Lon(),
			Total:            s.Total,
		}
	}
	return DriverNotification{Batch: e.BatchRef, Zone: e.Zone.String(), Stops: stops, At: e.AssignedAt}
}

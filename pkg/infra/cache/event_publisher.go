package cache

import (
	"context"
)

type Channel string

const AttackEventsChannel Channel = "paramguard:attacks"

type Event interface {
	Type() string
}

//go:generate mockery --name=EventPublisher --dir=. --output=./mocks --filename=event_publisher_mock.go --case=underscore
type EventPublisher interface {
	Publish(ctx context.Context, channel Channel, ev Event) error
}

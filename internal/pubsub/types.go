package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. Each
// event type maps to a topic of the same name.
type EventType string

const (
	EventAvailabilityUpdated EventType = "availability-updated"
	EventMatchesChanged      EventType = "matches-changed"
)

// AvailabilityEvent is the payload published when a team's availability
// for a week changes.
type AvailabilityEvent struct {
	TeamID string           `msgpack:"team_id"`
	WeekID weekclock.WeekID `msgpack:"week_id"`
}

// MatchesEvent is the payload published when the scheduled matches of a
// week change.
type MatchesEvent struct {
	WeekID weekclock.WeekID `msgpack:"week_id"`
}

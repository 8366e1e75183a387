package pubsub

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// Publisher adapts a PubSubClient to the fire-and-forget publisher
// interfaces the stores expect. Publish failures are logged and dropped;
// the write that triggered them has already committed and the matcher
// will catch up on the next full recompute.
type Publisher struct {
	client PubSubClient
}

// NewPublisher creates a new Publisher.
func NewPublisher(client PubSubClient) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) PublishAvailabilityUpdated(teamID string, weekID weekclock.WeekID) {
	event := AvailabilityEvent{TeamID: teamID, WeekID: weekID}
	if err := p.client.SendMessage(EventAvailabilityUpdated, event); err != nil {
		log.Error("Failed to publish availability event", "teamID", teamID, "weekID", weekID, "error", err)
	}
}

func (p *Publisher) PublishMatchesChanged(weekID weekclock.WeekID) {
	event := MatchesEvent{WeekID: weekID}
	if err := p.client.SendMessage(EventMatchesChanged, event); err != nil {
		log.Error("Failed to publish matches event", "weekID", weekID, "error", err)
	}
}

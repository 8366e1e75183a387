package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/notifier"
	"github.com/mauv0809/scrimsync/internal/proposal"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending scheduling notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	timezone  string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. timezone is the IANA zone used to
// render slot times for the channel.
func NewNotifier(token, channelID, timezone string, metricsSvc metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		timezone:  timezone,
		metrics:   metricsSvc,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID, timezone string, metricsSvc metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		timezone:  timezone,
		metrics:   metricsSvc,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendProposalCreated(p *proposal.Proposal, dryRun bool) error {
	msg := s.formatProposalMessage("A new scrim has been proposed!", p)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendProposalConfirmed(p *proposal.Proposal, dryRun bool) error {
	msg := s.formatProposalMessage("Scrim proposal confirmed!", p)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendMatchSealed(p *proposal.Proposal, match *schedule.ScheduledMatch, dryRun bool) error {
	msg := s.formatSealedMessage(p, match)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendProposalCancelled(p *proposal.Proposal, dryRun bool) error {
	msg := s.formatProposalMessage("Scrim proposal cancelled.", p)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatProposalMessage creates a Block Kit message describing a proposal.
func (s *Notifier) formatProposalMessage(headline string, p *proposal.Proposal) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", headline, true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s vs %s\nWhen: %s", p.ProposerTeamID, p.OpponentTeamID, s.slotLabel(p.WeekID, p.Slot))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Status: %s", p.Status), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatSealedMessage creates the Block Kit message for a locked-in match.
func (s *Notifier) formatSealedMessage(p *proposal.Proposal, match *schedule.ScheduledMatch) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Scrim locked in!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s vs %s\nWhen: %s\nDate: %s", match.TeamAID, match.TeamBID, s.slotLabel(match.WeekID, match.BlockedSlot), match.ScheduledDate)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Game type: %s", match.GameType), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// slotLabel renders a slot in the channel's local timezone, falling back
// to the raw UTC slot ID when the zone cannot be resolved.
func (s *Notifier) slotLabel(weekID weekclock.WeekID, slot timeslot.SlotID) string {
	monday, err := weekclock.MondayOfWeek(weekID)
	if err != nil {
		return fmt.Sprintf("%s (week %s)", slot, weekID)
	}
	display, err := timeslot.FormatSlotForDisplay(slot, s.timezone, monday)
	if err != nil {
		return fmt.Sprintf("%s (week %s)", slot, weekID)
	}
	return fmt.Sprintf("%s %s (week %s)", display.DayLabel, display.TimeLabel, weekID)
}

package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/config"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/matcher"
	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/notifier"
	"github.com/mauv0809/scrimsync/internal/proposal"
	"github.com/mauv0809/scrimsync/internal/pubsub"
	"github.com/mauv0809/scrimsync/internal/roster"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/template"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type serverFixture struct {
	server    *Server
	rosters   *roster.MockStore
	avail     *availability.MockStore
	matches   *schedule.MockStore
	proposals *proposal.MockStore
	pubsub    *pubsub.MockPubSubClient
}

func newTestServer(t *testing.T) *serverFixture {
	t.Helper()

	rosters := roster.NewMock()
	avail := availability.NewMock()
	matches := schedule.NewMock()
	proposalStore := proposal.NewMockStore()
	templates := template.NewMock()
	pubsubClient := pubsub.NewMock()
	metricsMock := metrics.NewMock()

	cache := availability.NewCache(avail)
	m := matcher.New(cache, rosters, matches, metricsMock)
	resolver := matcher.NewResolver(cache, matches)
	sweeper := schedule.NewSweeper(matches, metricsMock, nil)
	applier := template.NewApplier(templates, avail, rosters, metricsMock)
	proposalSvc := proposal.NewService(proposalStore, matches, resolver, notifier.NewMock(), nil)

	server := NewServer(config.Config{}, Deps{
		Rosters:        rosters,
		Avail:          avail,
		Cache:          cache,
		Matcher:        m,
		Resolver:       resolver,
		Matches:        matches,
		Sweeper:        sweeper,
		Proposals:      proposalSvc,
		ProposalStore:  proposalStore,
		Templates:      templates,
		Applier:        applier,
		Metrics:        metricsMock,
		MetricsHandler: http.NotFoundHandler(),
		PubSub:         pubsubClient,
	})

	return &serverFixture{
		server:    server,
		rosters:   rosters,
		avail:     avail,
		matches:   matches,
		proposals: proposalStore,
		pubsub:    pubsubClient,
	}
}

func TestHealthCheck(t *testing.T) {
	f := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestAvailabilityRequiresValidWeek(t *testing.T) {
	f := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/availability?team=team-a&week=garbage", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAvailabilityReturnsRecord(t *testing.T) {
	f := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/availability?team=team-a&week=2026-03", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var record availability.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, "team-a", record.TeamID)
	assert.Equal(t, weekclock.WeekID("2026-03"), record.WeekID)
}

func TestSlotUpdate(t *testing.T) {
	f := newTestServer(t)
	body := `{"team_id":"team-a","week_id":"2026-03","slot":"wed_2000","user_id":"anna","op":"add"}`
	req := httptest.NewRequest(http.MethodPost, "/availability/slot", strings.NewReader(body))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, f.avail.SaveSlotUpdateCalls, 1)
	call := f.avail.SaveSlotUpdateCalls[0]
	assert.Equal(t, "team-a", call.TeamID)
	assert.Equal(t, availability.OpAdd, call.Op)
}

func TestSlotUpdateRejectsUnknownOp(t *testing.T) {
	f := newTestServer(t)
	body := `{"team_id":"team-a","week_id":"2026-03","slot":"wed_2000","user_id":"anna","op":"steal"}`
	req := httptest.NewRequest(http.MethodPost, "/availability/slot", strings.NewReader(body))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, f.avail.SaveSlotUpdateCalls)
}

func TestViableSlotsRequiresTeams(t *testing.T) {
	f := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/viable-slots?week=2026-03", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestViableSlotsReturnsSortedList(t *testing.T) {
	f := newTestServer(t)
	f.avail.GetRecordFunc = func(teamID string, weekID weekclock.WeekID) (*availability.Record, error) {
		return &availability.Record{
			TeamID: teamID,
			WeekID: weekID,
			Slots: map[timeslot.SlotID][]string{
				"fri_1800": {"a", "b", "c"},
				"mon_1900": {"a", "b", "c"},
			},
			Unavailable: map[timeslot.SlotID][]string{},
		}, nil
	}
	req := httptest.NewRequest(http.MethodGet, "/viable-slots?proposer=team-a&opponent=team-b&week=2026-03&minYour=3&minOpp=3", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var viable []matcher.ViableSlot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &viable))
	require.Len(t, viable, 2)
	assert.Equal(t, timeslot.SlotID("mon_1900"), viable[0].Slot)
	assert.Equal(t, timeslot.SlotID("fri_1800"), viable[1].Slot)
}

func TestBlockedSlots(t *testing.T) {
	f := newTestServer(t)
	f.matches.GetMatchesForWeekFunc = func(weekID weekclock.WeekID) ([]*schedule.ScheduledMatch, error) {
		return []*schedule.ScheduledMatch{
			{ID: "m1", TeamAID: "team-a", TeamBID: "team-b", WeekID: weekID, BlockedSlot: "wed_2000", Status: schedule.StatusUpcoming},
			{ID: "m2", TeamAID: "team-c", TeamBID: "team-d", WeekID: weekID, BlockedSlot: "thu_2100", Status: schedule.StatusUpcoming},
		}, nil
	}
	req := httptest.NewRequest(http.MethodGet, "/blocked-slots?team=team-a&week=2026-03", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var slots []timeslot.SlotID
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &slots))
	assert.Equal(t, []timeslot.SlotID{"wed_2000"}, slots)
}

func TestCreateProposalEndpoint(t *testing.T) {
	f := newTestServer(t)
	f.avail.GetRecordFunc = func(teamID string, weekID weekclock.WeekID) (*availability.Record, error) {
		return &availability.Record{
			TeamID: teamID,
			WeekID: weekID,
			Slots: map[timeslot.SlotID][]string{
				"wed_2000": {"a", "b", "c", "d"},
			},
			Unavailable: map[timeslot.SlotID][]string{},
		}, nil
	}
	body := `{"proposer_team_id":"team-a","opponent_team_id":"team-b","week_id":"2026-03","slot":"wed_2000","min_your_team":3,"min_opponent":3}`
	req := httptest.NewRequest(http.MethodPost, "/proposals", strings.NewReader(body))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var p proposal.Proposal
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, proposal.StatusPending, p.Status)
}

func TestCreateProposalNotViableReturns412(t *testing.T) {
	f := newTestServer(t)
	// Default mock record is empty, so no slot is viable.
	body := `{"proposer_team_id":"team-a","opponent_team_id":"team-b","week_id":"2026-03","slot":"wed_2000","min_your_team":3,"min_opponent":3}`
	req := httptest.NewRequest(http.MethodPost, "/proposals", strings.NewReader(body))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
}

func TestConfirmUnknownProposalReturns412(t *testing.T) {
	f := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/proposals/confirm", strings.NewReader(`{"id":"missing"}`))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
}

func TestCancelMatchNotFoundReturns404(t *testing.T) {
	f := newTestServer(t)
	f.matches.CancelMatchFunc = func(matchID string) error {
		return faults.NotFoundf("match %s not found", matchID)
	}
	req := httptest.NewRequest(http.MethodPost, "/matches/cancel", strings.NewReader(`{"id":"missing"}`))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAvailabilityUpdatedPush(t *testing.T) {
	f := newTestServer(t)

	payload, err := msgpack.Marshal(pubsub.AvailabilityEvent{TeamID: "team-a", WeekID: "2026-03"})
	require.NoError(t, err)
	envelope := map[string]any{
		"subscription": "projects/test/subscriptions/availability-updated",
		"message": map[string]string{
			"data": base64.StdEncoding.EncodeToString(payload),
		},
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	f.pubsub.ProcessMessageFunc = func(data []byte, returnValue any) error {
		return msgpack.Unmarshal(data, returnValue)
	}

	req := httptest.NewRequest(http.MethodPost, "/pubsub/availability-updated", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, f.pubsub.ProcessMessageCalls, 1)
}

func TestAvailabilityUpdatedPushRejectsBadEnvelope(t *testing.T) {
	f := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/pubsub/availability-updated", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/fixtures"
	"github.com/mauv0809/scrimsync/internal/matcher"
	"github.com/mauv0809/scrimsync/internal/proposal"
	"github.com/mauv0809/scrimsync/internal/pubsub"
	"github.com/mauv0809/scrimsync/internal/roster"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/template"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear all stores")
		s.Rosters.Clear()
		s.Avail.Clear()
		s.Matches.Clear()
		s.ProposalStore.Clear()
		s.Templates.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Stores cleared!")
	}
}

type teamRequest struct {
	ID                 string `json:"id" validate:"required"`
	Name               string `json:"name" validate:"required"`
	HideFromComparison bool   `json:"hide_from_comparison"`
	HideRosterNames    bool   `json:"hide_roster_names"`
}

func (s *Server) TeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			teams, err := s.Rosters.GetAllTeams()
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, teams)
		case http.MethodPost:
			var req teamRequest
			if err := s.decodeAndValidate(r, &req); err != nil {
				writeError(w, err)
				return
			}
			team := roster.Team{
				ID:                 req.ID,
				Name:               req.Name,
				HideFromComparison: req.HideFromComparison,
				HideRosterNames:    req.HideRosterNames,
			}
			if err := s.Rosters.UpsertTeam(team); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, team)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

type memberRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name"`
}

func (s *Server) TeamMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req memberRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}
		switch r.Method {
		case http.MethodPost:
			if err := s.Rosters.AddMember(req.TeamID, req.UserID, req.Name); err != nil {
				writeError(w, err)
				return
			}
		case http.MethodDelete:
			if err := s.Rosters.RemoveMember(req.TeamID, req.UserID); err != nil {
				writeError(w, err)
				return
			}
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) RosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team")
		if teamID == "" {
			writeError(w, faults.Validationf("missing 'team' parameter"))
			return
		}
		members, err := s.Rosters.GetRoster(teamID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, members)
	}
}

func (s *Server) AvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team")
		weekID := weekclock.WeekID(r.URL.Query().Get("week"))
		if teamID == "" {
			writeError(w, faults.Validationf("missing 'team' parameter"))
			return
		}
		if _, _, err := weekclock.ParseWeekID(weekID); err != nil {
			writeError(w, err)
			return
		}
		record, err := s.Cache.Snapshot(teamID, weekID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

type slotUpdateRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	WeekID string `json:"week_id" validate:"required"`
	Slot   string `json:"slot" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
	Op     string `json:"op" validate:"required,oneof=add remove mark_unavailable clear_unavailable"`
}

func (s *Server) SlotUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req slotUpdateRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}
		err := s.Avail.SaveSlotUpdate(
			req.TeamID,
			weekclock.WeekID(req.WeekID),
			timeslot.SlotID(req.Slot),
			req.UserID,
			availability.Op(req.Op),
		)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) MatchingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		userTeam := q.Get("team")
		if userTeam == "" {
			writeError(w, faults.Validationf("missing 'team' parameter"))
			return
		}
		opponents := splitParam(q.Get("opponents"))

		var weeks []weekclock.WeekID
		if raw := q.Get("weeks"); raw != "" {
			for _, part := range splitParam(raw) {
				weekID := weekclock.WeekID(part)
				if _, _, err := weekclock.ParseWeekID(weekID); err != nil {
					writeError(w, err)
					return
				}
				weeks = append(weeks, weekID)
			}
		} else {
			current, next := weekclock.CurrentAndNext(time.Now().UTC())
			weeks = []weekclock.WeekID{current, next}
		}

		filter := matcher.MinFilter{
			YourTeam: intParam(q.Get("minYour"), 1),
			Opponent: intParam(q.Get("minOpp"), 1),
		}

		if err := s.Matcher.SetSelection(r.Context(), userTeam, opponents, weeks, filter); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Matcher.Snapshot())
	}
}

func (s *Server) ViableSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		proposer := q.Get("proposer")
		opponent := q.Get("opponent")
		if proposer == "" || opponent == "" {
			writeError(w, faults.Validationf("missing 'proposer' or 'opponent' parameter"))
			return
		}
		weekID := weekclock.WeekID(q.Get("week"))
		filter := matcher.MinFilter{
			YourTeam: intParam(q.Get("minYour"), 1),
			Opponent: intParam(q.Get("minOpp"), 1),
		}
		viable, err := s.Resolver.ComputeViableSlots(proposer, opponent, weekID, filter)
		if err != nil {
			writeError(w, err)
			return
		}
		if viable == nil {
			viable = []matcher.ViableSlot{}
		}
		writeJSON(w, http.StatusOK, viable)
	}
}

func (s *Server) BlockedSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team")
		weekID := weekclock.WeekID(r.URL.Query().Get("week"))
		if teamID == "" {
			writeError(w, faults.Validationf("missing 'team' parameter"))
			return
		}
		if _, _, err := weekclock.ParseWeekID(weekID); err != nil {
			writeError(w, err)
			return
		}
		matches, err := s.Matches.GetMatchesForWeek(weekID)
		if err != nil {
			writeError(w, err)
			return
		}
		blocked := schedule.BlockedSlots(matches, teamID, weekID)
		slots := make([]timeslot.SlotID, 0, len(blocked))
		for slot := range blocked {
			slots = append(slots, slot)
		}
		timeslot.SortSlots(slots)
		writeJSON(w, http.StatusOK, slots)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			matches []*schedule.ScheduledMatch
			err     error
		)
		if week := r.URL.Query().Get("week"); week != "" {
			matches, err = s.Matches.GetMatchesForWeek(weekclock.WeekID(week))
		} else {
			matches, err = s.Matches.GetAllMatches()
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

type idRequest struct {
	ID string `json:"id" validate:"required"`
}

func (s *Server) CancelMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req idRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Matches.CancelMatch(req.ID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
	}
}

type proposalRequest struct {
	ProposerTeamID string `json:"proposer_team_id" validate:"required"`
	OpponentTeamID string `json:"opponent_team_id" validate:"required"`
	WeekID         string `json:"week_id" validate:"required"`
	Slot           string `json:"slot" validate:"required"`
	MinYourTeam    int    `json:"min_your_team" validate:"gte=0"`
	MinOpponent    int    `json:"min_opponent" validate:"gte=0"`
}

func (s *Server) ProposalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			open, err := s.ProposalStore.GetOpenProposals()
			if err != nil {
				writeError(w, err)
				return
			}
			if open == nil {
				open = []*proposal.Proposal{}
			}
			writeJSON(w, http.StatusOK, open)
		case http.MethodPost:
			var req proposalRequest
			if err := s.decodeAndValidate(r, &req); err != nil {
				writeError(w, err)
				return
			}
			filter := matcher.MinFilter{YourTeam: req.MinYourTeam, Opponent: req.MinOpponent}
			p, err := s.Proposals.Create(
				req.ProposerTeamID,
				req.OpponentTeamID,
				weekclock.WeekID(req.WeekID),
				timeslot.SlotID(req.Slot),
				filter,
				isDryRunFromContext(r),
			)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, p)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) ConfirmProposalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req idRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}
		p, err := s.Proposals.Confirm(req.ID, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

type sealRequest struct {
	ID       string `json:"id" validate:"required"`
	GameType string `json:"game_type" validate:"omitempty,oneof=official practice"`
}

func (s *Server) SealProposalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sealRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}
		gameType := schedule.GameOfficial
		if req.GameType != "" {
			gameType = schedule.GameType(req.GameType)
		}
		match, err := s.Proposals.Seal(req.ID, gameType, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func (s *Server) CancelProposalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req idRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Proposals.Cancel(req.ID, isDryRunFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
	}
}

type templateRequest struct {
	UserID string   `json:"user_id" validate:"required"`
	Slots  []string `json:"slots" validate:"required,min=1"`
}

func (s *Server) TemplatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userID := r.URL.Query().Get("user")
			if userID == "" {
				writeError(w, faults.Validationf("missing 'user' parameter"))
				return
			}
			tmpl, err := s.Templates.GetTemplate(userID)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, tmpl)
		case http.MethodPost:
			var req templateRequest
			if err := s.decodeAndValidate(r, &req); err != nil {
				writeError(w, err)
				return
			}
			slots := make([]timeslot.SlotID, 0, len(req.Slots))
			for _, raw := range req.Slots {
				slot := timeslot.SlotID(raw)
				if _, _, _, err := timeslot.ParseSlotID(slot); err != nil {
					writeError(w, err)
					return
				}
				slots = append(slots, slot)
			}
			tmpl := &template.Template{UserID: req.UserID, Slots: slots}
			if err := s.Templates.SaveTemplate(tmpl); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, tmpl)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

type recurringRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Enabled *bool  `json:"enabled" validate:"required"`
}

func (s *Server) RecurringTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recurringRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Applier.SetRecurring(req.UserID, *req.Enabled, time.Now().UTC()); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) ExpirationSweepHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Sweeper.Sweep(time.Now().UTC(), isDryRunFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "swept"})
	}
}

func (s *Server) TemplateSweepHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Applier.RunWeeklySweep(time.Now().UTC(), isDryRunFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "swept"})
	}
}

func (s *Server) ImportFixturesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Importer == nil {
			http.Error(w, "Fixture import not configured", http.StatusServiceUnavailable)
			return
		}
		params := &fixtures.SearchFixturesParams{
			LeagueID:      s.Cfg.League.LeagueID,
			FromStartDate: time.Now().UTC().Format("2006-01-02") + "T00:00:00",
		}
		if teams := r.URL.Query().Get("teams"); teams != "" {
			params.TeamIDs = splitParam(teams)
		}
		report, err := s.Importer.Run(params, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// pushEnvelope is the Pub/Sub push message wrapper.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}

func decodePushData(r *http.Request) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	var envelope pushEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return nil, faults.Validationf("invalid push envelope: %v", err)
	}
	rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return nil, faults.Validationf("invalid base64 data: %v", err)
	}
	return rawData, nil
}

func (s *Server) AvailabilityUpdatedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushData(r)
		if err != nil {
			writeError(w, err)
			return
		}
		event := pubsub.AvailabilityEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			writeError(w, faults.Validationf("invalid availability event: %v", err))
			return
		}
		log.Info("Availability updated", "teamID", event.TeamID, "weekID", event.WeekID)
		s.Cache.Invalidate(event.TeamID, event.WeekID)
		w.Write([]byte("OK"))
	}
}

func (s *Server) MatchesChangedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushData(r)
		if err != nil {
			writeError(w, err)
			return
		}
		event := pubsub.MatchesEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			writeError(w, faults.Validationf("invalid matches event: %v", err))
			return
		}
		log.Info("Matches changed", "weekID", event.WeekID)
		if err := s.Matcher.Recompute(r.Context()); err != nil {
			log.Error("Failed to recompute after matches change", "weekID", event.WeekID, "error", err)
		}
		w.Write([]byte("OK"))
	}
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Warn("Invalid numeric parameter, using fallback", "value", raw, "fallback", fallback)
		return fallback
	}
	return n
}

// Package matcher implements the cross-team availability comparison: given
// one team's weekly availability and a set of candidate opponents, it
// computes which slots are viable matches under the configured headcount
// filters, excluding slots already claimed by scheduled matches.
package matcher

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/roster"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// Matcher computes and holds the latest availability comparison for one
// viewer selection. Every trigger (week navigation, filter change,
// opponent change, cache invalidation) fully recomputes; the input sets
// are small enough that incremental patching is not worth its complexity.
type Matcher struct {
	snapshots SnapshotProvider
	rosters   roster.RosterStore
	matches   schedule.MatchStore
	metrics   metrics.Metrics

	mu        sync.RWMutex
	userTeam  string
	opponents []string
	weeks     []weekclock.WeekID
	filter    MinFilter
	result    Result
	userInfo  map[weekclock.WeekID]map[timeslot.SlotID]*UserTeamInfo
}

// New creates a new Matcher.
func New(snapshots SnapshotProvider, rosters roster.RosterStore, matches schedule.MatchStore, metricsSvc metrics.Metrics) *Matcher {
	return &Matcher{
		snapshots: snapshots,
		rosters:   rosters,
		matches:   matches,
		metrics:   metricsSvc,
		result:    Result{},
		userInfo:  map[weekclock.WeekID]map[timeslot.SlotID]*UserTeamInfo{},
	}
}

// SetSelection replaces the viewer selection and recomputes.
func (m *Matcher) SetSelection(ctx context.Context, userTeam string, opponents []string, weeks []weekclock.WeekID, filter MinFilter) error {
	m.mu.Lock()
	m.userTeam = userTeam
	m.opponents = append([]string(nil), opponents...)
	m.weeks = append([]weekclock.WeekID(nil), weeks...)
	m.filter = filter
	m.mu.Unlock()
	return m.Recompute(ctx)
}

// HandleInvalidation is the cache subscription hook: it recomputes when
// the changed (team, week) is part of the current selection.
func (m *Matcher) HandleInvalidation(teamID string, weekID weekclock.WeekID) {
	m.mu.RLock()
	relevant := false
	if m.userTeam != "" {
		inWeeks := false
		for _, w := range m.weeks {
			if w == weekID {
				inWeeks = true
				break
			}
		}
		if inWeeks {
			if teamID == m.userTeam {
				relevant = true
			}
			for _, opp := range m.opponents {
				if opp == teamID {
					relevant = true
					break
				}
			}
		}
	}
	m.mu.RUnlock()

	if !relevant {
		return
	}
	if err := m.Recompute(context.Background()); err != nil {
		log.Error("Failed to recompute matches after invalidation", "team", teamID, "week", weekID, "error", err)
	}
}

// Recompute runs the full comparison for the current selection and swaps
// in the new result atomically.
func (m *Matcher) Recompute(ctx context.Context) error {
	m.mu.RLock()
	userTeam := m.userTeam
	opponents := append([]string(nil), m.opponents...)
	weeks := append([]weekclock.WeekID(nil), m.weeks...)
	filter := m.filter
	m.mu.RUnlock()

	if userTeam == "" || len(weeks) == 0 {
		return nil
	}

	startTime := time.Now()
	m.metrics.IncMatchComputeRuns()

	result := Result{}
	userInfo := map[weekclock.WeekID]map[timeslot.SlotID]*UserTeamInfo{}
	for _, week := range weeks {
		weekResult, weekUserInfo, err := m.computeWeek(ctx, userTeam, opponents, week, filter)
		if err != nil {
			return err
		}
		result[week] = weekResult
		userInfo[week] = weekUserInfo
	}

	m.mu.Lock()
	m.result = result
	m.userInfo = userInfo
	m.mu.Unlock()

	m.metrics.ObserveMatchComputeDuration(time.Since(startTime).Seconds())
	log.Debug("Recomputed availability matches", "userTeam", userTeam, "opponents", len(opponents), "weeks", len(weeks))
	return nil
}

func (m *Matcher) computeWeek(ctx context.Context, userTeam string, opponents []string, week weekclock.WeekID, filter MinFilter) (WeekMatches, map[timeslot.SlotID]*UserTeamInfo, error) {
	userRecord, err := m.snapshots.Snapshot(userTeam, week)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load own availability for %s/%s: %w", userTeam, week, err)
	}

	// Opponent loads are independent and read-only, so they fan out
	// concurrently and are combined once all have resolved.
	oppRecords := make(map[string]*availability.Record, len(opponents))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, oppID := range opponents {
		wg.Add(1)
		go func(oppID string) {
			defer wg.Done()
			record, err := m.snapshots.Snapshot(oppID, week)
			if err != nil {
				// Missing availability degrades to empty, never an error.
				log.Error("Failed to load opponent availability", "team", oppID, "week", week, "error", err)
				return
			}
			mu.Lock()
			oppRecords[oppID] = record
			mu.Unlock()
		}(oppID)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	weekMatches, err := m.matches.GetMatchesForWeek(week)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load matches for %s: %w", week, err)
	}
	userBlocked := schedule.BlockedSlots(weekMatches, userTeam, week)

	out := WeekMatches{}
	for _, oppID := range opponents {
		oppRecord, ok := oppRecords[oppID]
		if !ok {
			oppRecord = emptyRecord(oppID, week)
		}

		team, err := m.rosters.GetTeam(oppID)
		if err != nil {
			// Unknown team: compare against it with default visibility.
			team = &roster.Team{ID: oppID, Name: oppID}
		}
		// Exclusion is a privacy opt-out, not a scheduling conflict: a
		// hidden team contributes nothing, not even blocked slots.
		if team.HideFromComparison {
			continue
		}

		members, err := m.rosters.GetRoster(oppID)
		if err != nil {
			members = []roster.Member{}
		}
		names := make(map[string]string, len(members))
		for _, member := range members {
			names[member.UserID] = member.Name
		}

		oppBlocked := schedule.BlockedSlots(weekMatches, oppID, week)

		for _, slot := range unionSlots(userRecord, oppRecord) {
			if _, ok := userBlocked[slot]; ok {
				continue
			}
			if _, ok := oppBlocked[slot]; ok {
				continue
			}

			userCount := len(userRecord.Slots[slot])
			oppCount := len(oppRecord.Slots[slot])
			if userCount < filter.YourTeam || oppCount < filter.Opponent {
				continue
			}

			info, ok := out[slot]
			if !ok {
				info = &SlotMatchInfo{HasMatch: true, UserCount: userCount}
				out[slot] = info
			}
			info.Matches = append(info.Matches, buildOpponentMatch(team, oppRecord, slot, names))
		}
	}

	for _, info := range out {
		for _, opp := range info.Matches {
			if info.UserCount >= FullMatchThreshold && opp.AvailableCount >= FullMatchThreshold {
				info.IsFullMatch = true
				break
			}
		}
		sort.Slice(info.Matches, func(i, j int) bool {
			if info.Matches[i].TeamName != info.Matches[j].TeamName {
				return info.Matches[i].TeamName < info.Matches[j].TeamName
			}
			return info.Matches[i].TeamID < info.Matches[j].TeamID
		})
	}

	return out, m.buildUserInfo(userTeam, userRecord), nil
}

func (m *Matcher) buildUserInfo(userTeam string, record *availability.Record) map[timeslot.SlotID]*UserTeamInfo {
	members, err := m.rosters.GetRoster(userTeam)
	if err != nil {
		members = []roster.Member{}
	}
	names := make(map[string]string, len(members))
	for _, member := range members {
		names[member.UserID] = member.Name
	}

	out := map[timeslot.SlotID]*UserTeamInfo{}
	for slot, users := range record.Slots {
		out[slot] = &UserTeamInfo{
			Count:       len(users),
			Available:   resolveEntries(users, names),
			Unavailable: resolveEntries(record.Unavailable[slot], names),
		}
	}
	for slot, users := range record.Unavailable {
		if _, ok := out[slot]; !ok {
			out[slot] = &UserTeamInfo{Unavailable: resolveEntries(users, names)}
		}
	}
	return out
}

// GetSlotMatchInfo returns the latest computed info for a slot, or nil
// when the slot has no candidate match.
func (m *Matcher) GetSlotMatchInfo(week weekclock.WeekID, slot timeslot.SlotID) *SlotMatchInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	weekResult, ok := m.result[week]
	if !ok {
		return nil
	}
	return weekResult[slot]
}

// GetUserTeamInfo returns the viewer's own team state for a slot, or nil.
func (m *Matcher) GetUserTeamInfo(week weekclock.WeekID, slot timeslot.SlotID) *UserTeamInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	weekInfo, ok := m.userInfo[week]
	if !ok {
		return nil
	}
	return weekInfo[slot]
}

// Snapshot returns the whole latest result, keyed by week then slot.
func (m *Matcher) Snapshot() Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.result
}

func buildOpponentMatch(team *roster.Team, record *availability.Record, slot timeslot.SlotID, names map[string]string) OpponentMatch {
	match := OpponentMatch{
		TeamID:         team.ID,
		TeamName:       team.Name,
		AvailableCount: len(record.Slots[slot]),
		Anonymized:     team.HideRosterNames,
	}
	if team.HideRosterNames {
		match.Available = anonymizedEntries(len(record.Slots[slot]))
		match.Unavailable = anonymizedEntries(len(record.Unavailable[slot]))
	} else {
		match.Available = resolveEntries(record.Slots[slot], names)
		match.Unavailable = resolveEntries(record.Unavailable[slot], names)
	}
	return match
}

func resolveEntries(userIDs []string, names map[string]string) []RosterEntry {
	entries := make([]RosterEntry, 0, len(userIDs))
	for _, id := range userIDs {
		name, ok := names[id]
		if !ok {
			name = id
		}
		entries = append(entries, RosterEntry{UserID: id, Name: name})
	}
	return entries
}

func anonymizedEntries(count int) []RosterEntry {
	entries := make([]RosterEntry, 0, count)
	for i := 0; i < count; i++ {
		entries = append(entries, RosterEntry{Name: fmt.Sprintf("Player %d", i+1)})
	}
	return entries
}

func unionSlots(a, b *availability.Record) []timeslot.SlotID {
	seen := make(map[timeslot.SlotID]struct{}, len(a.Slots)+len(b.Slots))
	var slots []timeslot.SlotID
	for slot := range a.Slots {
		if _, ok := seen[slot]; !ok {
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
	}
	for slot := range b.Slots {
		if _, ok := seen[slot]; !ok {
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return timeslot.SortKey(slots[i]) < timeslot.SortKey(slots[j]) })
	return slots
}

func emptyRecord(teamID string, weekID weekclock.WeekID) *availability.Record {
	return &availability.Record{
		TeamID:      teamID,
		WeekID:      weekID,
		Slots:       map[timeslot.SlotID][]string{},
		Unavailable: map[timeslot.SlotID][]string{},
	}
}

// Package timeslot maps between a viewer's local day/time grid and the
// canonical UTC slot identifiers. All conversions are anchored to a
// reference date so that daylight-saving offsets are computed from the
// actual instant being scheduled, not from the offset in force today.
package timeslot

import (
	"fmt"
	"sort"
	"time"

	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// DayIndex resolves a day token ("mon".."sun") to its Monday-first index.
func DayIndex(token string) (int, error) {
	for i, d := range dayTokens {
		if d == token {
			return i, nil
		}
	}
	return 0, faults.Validationf("unknown day token %q", token)
}

// DayToken returns the token for a Monday-first day index.
func DayToken(index int) string {
	return dayTokens[((index % 7) + 7) % 7]
}

// FormatSlotID builds a SlotID from a Monday-first day index and a UTC
// time of day.
func FormatSlotID(dayIndex, hour, minute int) SlotID {
	return SlotID(fmt.Sprintf("%s_%02d%02d", DayToken(dayIndex), hour, minute))
}

// ParseSlotID validates a SlotID and splits it into its components.
// The time must sit on a 30-minute boundary; malformed ids are rejected,
// never clamped.
func ParseSlotID(id SlotID) (dayIndex, hour, minute int, err error) {
	s := string(id)
	if len(s) != 8 || s[3] != '_' {
		return 0, 0, 0, faults.Validationf("malformed slot id %q", id)
	}
	dayIndex, err = DayIndex(s[:3])
	if err != nil {
		return 0, 0, 0, err
	}
	if _, err := fmt.Sscanf(s[4:], "%02d%02d", &hour, &minute); err != nil {
		return 0, 0, 0, faults.Validationf("malformed slot id %q", id)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, 0, faults.Validationf("time out of range in slot id %q", id)
	}
	if minute%SlotMinutes != 0 {
		return 0, 0, 0, faults.Validationf("slot id %q not on a %d-minute boundary", id, SlotMinutes)
	}
	return dayIndex, hour, minute, nil
}

// SortKey orders slots by day-of-week (Monday first) then time-of-day.
// The id must already be validated.
func SortKey(id SlotID) int {
	day, hour, minute, err := ParseSlotID(id)
	if err != nil {
		return -1
	}
	return day*24*60 + hour*60 + minute
}

// SortSlots sorts slot ids in place by day-of-week then time-of-day.
func SortSlots(slots []SlotID) {
	sort.Slice(slots, func(i, j int) bool {
		return SortKey(slots[i]) < SortKey(slots[j])
	})
}

// OffsetMinutes returns the UTC offset of the timezone at the given
// instant. Matches are scheduled weeks ahead, possibly across a DST
// switch, so the offset is always derived from the instant itself.
func OffsetMinutes(timezone string, at time.Time) (int, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0, faults.Validationf("unknown timezone %q", timezone)
	}
	_, offsetSeconds := at.In(loc).Zone()
	return offsetSeconds / 60, nil
}

// parseClock validates a local "HH:MM" wall-clock string.
func parseClock(clock string) (hour, minute int, err error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, 0, faults.Validationf("malformed time %q", clock)
	}
	if _, err := fmt.Sscanf(clock, "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, faults.Validationf("malformed time %q", clock)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, faults.Validationf("time out of range %q", clock)
	}
	return hour, minute, nil
}

// LocalToUTCSlot converts a viewer's local (day, "HH:MM") into the
// canonical UTC slot, anchored to the ISO week containing refDate. The
// returned WeekID is the ISO week the UTC instant lands in, which differs
// from refDate's week when the conversion wraps past Sunday midnight
// (e.g. local Sunday night in a western timezone becomes UTC Monday of
// the following week).
func LocalToUTCSlot(day, clock, timezone string, refDate time.Time) (SlotID, weekclock.WeekID, error) {
	dayIndex, err := DayIndex(day)
	if err != nil {
		return "", "", err
	}
	hour, minute, err := parseClock(clock)
	if err != nil {
		return "", "", err
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", "", faults.Validationf("unknown timezone %q", timezone)
	}

	monday, err := weekclock.MondayOfWeek(weekclock.WeekIDOf(refDate))
	if err != nil {
		return "", "", err
	}
	date := monday.AddDate(0, 0, dayIndex)
	// Constructing the wall-clock time in the viewer's location picks up
	// the UTC offset in force at that instant, including DST.
	local := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
	utc := local.UTC()

	utcDay := (int(utc.Weekday()) + 6) % 7
	slot := FormatSlotID(utcDay, utc.Hour(), utc.Minute())
	return slot, weekclock.WeekIDOf(utc), nil
}

// UTCToLocalSlot is the exact inverse of LocalToUTCSlot: it renders a
// canonical UTC slot as the viewer's local (day, "HH:MM") for the ISO
// week containing refDate.
func UTCToLocalSlot(id SlotID, timezone string, refDate time.Time) (day, clock string, err error) {
	dayIndex, hour, minute, err := ParseSlotID(id)
	if err != nil {
		return "", "", err
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", "", faults.Validationf("unknown timezone %q", timezone)
	}

	monday, err := weekclock.MondayOfWeek(weekclock.WeekIDOf(refDate))
	if err != nil {
		return "", "", err
	}
	date := monday.AddDate(0, 0, dayIndex)
	utc := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
	local := utc.In(loc)

	localDay := (int(local.Weekday()) + 6) % 7
	return DayToken(localDay), local.Format("15:04"), nil
}

// BuildUTCToGridMap precomputes the local rendering of every canonical UTC
// slot in the 7-day, 30-minute display grid for the week of refDate.
func BuildUTCToGridMap(timezone string, refDate time.Time) (map[SlotID]GridSlot, error) {
	out := make(map[SlotID]GridSlot, 7*slotsPerDay)
	for day := 0; day < 7; day++ {
		for i := 0; i < slotsPerDay; i++ {
			hour := i * SlotMinutes / 60
			minute := i * SlotMinutes % 60
			slot := FormatSlotID(day, hour, minute)
			localDay, localTime, err := UTCToLocalSlot(slot, timezone, refDate)
			if err != nil {
				return nil, err
			}
			out[slot] = GridSlot{Day: localDay, Time: localTime}
		}
	}
	return out, nil
}

// BuildGridToUTCMap is the inverse of BuildUTCToGridMap. It is built by
// inverting the UTC-side enumeration, so composing the two maps is the
// identity for every entry, including timezones whose UTC offset is not a
// multiple of 30 minutes.
func BuildGridToUTCMap(timezone string, refDate time.Time) (map[GridSlot]SlotID, error) {
	utcToGrid, err := BuildUTCToGridMap(timezone, refDate)
	if err != nil {
		return nil, err
	}
	out := make(map[GridSlot]SlotID, len(utcToGrid))
	for slot, grid := range utcToGrid {
		out[grid] = slot
	}
	return out, nil
}

// FormatSlotForDisplay renders a slot for a viewer: full local day name
// plus local wall-clock time.
func FormatSlotForDisplay(id SlotID, timezone string, refDate time.Time) (DisplaySlot, error) {
	day, clock, err := UTCToLocalSlot(id, timezone, refDate)
	if err != nil {
		return DisplaySlot{}, err
	}
	dayIndex, err := DayIndex(day)
	if err != nil {
		return DisplaySlot{}, err
	}
	return DisplaySlot{DayLabel: dayLabels[dayIndex], TimeLabel: clock}, nil
}

package timeslot

// SlotID is the canonical identifier of a half-hour scheduling bucket,
// "{day}_{HHMM}" with the day token and time always expressed in UTC,
// e.g. "wed_2000". Slot ids are stored and compared in UTC only; a
// viewer's local rendering is derived, never persisted.
type SlotID string

// GridSlot is one cell of the viewer-facing availability grid, expressed
// in the viewer's local day and wall-clock time ("HH:MM").
type GridSlot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// DisplaySlot is the human-readable rendering of a slot for a viewer.
type DisplaySlot struct {
	DayLabel  string `json:"day_label"`
	TimeLabel string `json:"time_label"`
}

// dayTokens is ordered Monday-first to match ISO weeks.
var dayTokens = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var dayLabels = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// SlotMinutes is the fixed slot granularity.
const SlotMinutes = 30

// slotsPerDay is the number of grid rows per day.
const slotsPerDay = 24 * 60 / SlotMinutes

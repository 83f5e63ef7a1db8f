package calendar

import "time"

// Period is one timesheet reporting week. Start and End are inclusive day
// boundaries in UTC; only the very first period of a generated sequence
// keeps the creation instant's time-of-day on Start.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayValue pre-seeds one calendar date with a day type before anyone edits
// the timesheet.
type DayValue struct {
	Date  time.Time `json:"date"`
	DayID int       `json:"dayId"`
}

// DayType is a reference category assignable to a date, with a default hour
// value and a display color.
type DayType struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Time  float64 `json:"time"`
	Color string  `json:"color"`
}

const (
	WeekendDayID   = 1
	CorporateDayID = 2
	HolidayDayID   = 3
)

// weeksPerYear is the number of full weeks generated after the initial
// partial week, covering roughly one year of reporting periods.
const weeksPerYear = 53

var weekend = DayType{
	ID:    WeekendDayID,
	Name:  "Weekend",
	Time:  0,
	Color: "#c5e9fb",
}
var corporate = DayType{
	ID:    CorporateDayID,
	Name:  "Corporate",
	Time:  0,
	Color: "#f3cce1",
}
var holiday = DayType{
	ID:    HolidayDayID,
	Name:  "Holiday",
	Time:  0,
	Color: "#fff9a1",
}

// DefaultDayTypes returns a fresh company-scoped copy of the three reference
// day types. Each company owns and may later re-tune its own copy, so the
// package-level values are never handed out directly.
func DefaultDayTypes() []DayType {
	return []DayType{weekend, corporate, holiday}
}

// GeneratePeriods tiles one year of weekly periods starting at now: first
// the remainder of the current week (start keeps now's time-of-day), then 53
// full Sunday-to-Saturday weeks. The result always has 54 entries and
// consecutive entries tile without gap or overlap at day granularity:
// periods[i].End plus one day equals periods[i+1].Start.
func GeneratePeriods(now time.Time) []Period {
	now = now.UTC()

	periods := make([]Period, 0, weeksPerYear+1)
	first := Period{
		Start: now,
		End:   endOfWeek(now),
	}
	periods = append(periods, first)

	start := first.End.AddDate(0, 0, 1)
	for i := 0; i < weeksPerYear; i++ {
		end := endOfWeek(start)
		periods = append(periods, Period{Start: start, End: end})
		start = end.AddDate(0, 0, 1)
	}

	return periods
}

// GenerateDefaultValues emits a weekend seed for every period boundary that
// lands on a weekend day. Both ends of a period are tested independently, in
// period order, start before end, so a single period contributes at most two
// entries.
func GenerateDefaultValues(periods []Period) []DayValue {
	defaultValues := make([]DayValue, 0, len(periods)*2)

	for _, period := range periods {
		if IsWeekend(period.Start) {
			defaultValues = append(defaultValues, DayValue{Date: period.Start, DayID: weekend.ID})
		}
		if IsWeekend(period.End) {
			defaultValues = append(defaultValues, DayValue{Date: period.End, DayID: weekend.ID})
		}
	}

	return defaultValues
}

// IsWeekend reports whether the date falls on Sunday or Saturday. With Go's
// numbering (Sunday=0, Saturday=6) that is exactly weekday mod 6 == 0, the
// same rule the legacy backend applied.
func IsWeekend(date time.Time) bool {
	return int(date.UTC().Weekday())%6 == 0
}

// endOfWeek returns the Saturday of the week containing t, at 00:00 UTC.
// Weeks run Sunday through Saturday.
func endOfWeek(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, int(time.Saturday-day.Weekday()))
}

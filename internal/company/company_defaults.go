package company

import (
	"time"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/calendar"
)

const defaultWorkdayHours = 8

// Historic default role list, kept verbatim from the legacy backend
// (including the first entry's Cyrillic 'С').
var defaultAvailablePositions = []string{
	"СEO",
	"CTO",
	"Designer",
	"Developer",
	"Junior Developer",
	"Junior QA",
	"Manager",
	"QA",
	"Senior Developer",
	"Senior QA",
	"Teamlead",
	"UX",
}

// Defaults is the canonical default configuration of a freshly created
// company. It is also served as-is to clients that want the schema without
// persisting anything.
type Defaults struct {
	Template           TimeEntryTemplate   `json:"template"`
	Periods            []calendar.Period   `json:"periods"`
	DayTypes           []calendar.DayType  `json:"dayTypes"`
	DefaultValues      []calendar.DayValue `json:"defaultValues"`
	AvailablePositions []string            `json:"availablePositions"`
}

// BuildDefaultCompany assembles the default configuration for a company
// created at the given instant. Pure: two calls with the same now produce
// structurally identical output.
func BuildDefaultCompany(now time.Time) Defaults {
	periods := calendar.GeneratePeriods(now)

	return Defaults{
		Template: TimeEntryTemplate{
			Date:    "",
			Role:    "",
			Time:    defaultWorkdayHours,
			Comment: "",
		},
		Periods:            periods,
		DayTypes:           calendar.DefaultDayTypes(),
		DefaultValues:      calendar.GenerateDefaultValues(periods),
		AvailablePositions: append([]string(nil), defaultAvailablePositions...),
	}
}

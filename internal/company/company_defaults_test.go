package company_test

import (
	"testing"
	"time"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/calendar"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/company"

	"github.com/stretchr/testify/assert"
)

func TestBuildDefaultCompany_Deterministic(t *testing.T) {
	now := time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)

	a := company.BuildDefaultCompany(now)
	b := company.BuildDefaultCompany(now)

	assert.Equal(t, a, b, "two builds at the same instant must be identical")
}

func TestBuildDefaultCompany_Structure(t *testing.T) {
	now := time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)
	d := company.BuildDefaultCompany(now)

	assert.Equal(t, company.TimeEntryTemplate{Date: "", Role: "", Time: 8, Comment: ""}, d.Template)
	assert.Len(t, d.Periods, 54)
	assert.Equal(t, calendar.DefaultDayTypes(), d.DayTypes)
	assert.Equal(t, calendar.GenerateDefaultValues(d.Periods), d.DefaultValues)

	assert.Len(t, d.AvailablePositions, 12)
	assert.Contains(t, d.AvailablePositions, "Developer")
	assert.Contains(t, d.AvailablePositions, "Teamlead")
}

func TestBuildDefaultCompany_PositionsAreCopies(t *testing.T) {
	now := time.Now().UTC()

	d := company.BuildDefaultCompany(now)
	d.AvailablePositions[0] = "Mutated"

	assert.NotEqual(t, "Mutated", company.BuildDefaultCompany(now).AvailablePositions[0])
}

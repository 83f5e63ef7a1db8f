package company

import (
	"time"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/calendar"

	"github.com/google/uuid"
)

// Company is the source of truth for the timesheet configuration shared with
// its projects. The document-shaped fields live in jsonb columns.
type Company struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string              `gorm:"column:name;type:varchar(255);not null"`
	OwnerID            *uuid.UUID          `gorm:"column:owner_id;type:uuid"`
	Template           TimeEntryTemplate   `gorm:"column:template;type:jsonb;serializer:json"`
	Periods            []calendar.Period   `gorm:"column:periods;type:jsonb;serializer:json"`
	DayTypes           []calendar.DayType  `gorm:"column:day_types;type:jsonb;serializer:json"`
	DefaultValues      []calendar.DayValue `gorm:"column:default_values;type:jsonb;serializer:json"`
	AvailablePositions []string            `gorm:"column:available_positions;type:jsonb;serializer:json"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}

// TimeEntryTemplate is the default shape of a single timesheet entry.
type TimeEntryTemplate struct {
	Date    string  `json:"date"`
	Role    string  `json:"role"`
	Time    float64 `json:"time"`
	Comment string  `json:"comment"`
}

// ProjectDefaults is the subset of company configuration denormalized onto
// every project. Company pushes it down; projects never own it.
type ProjectDefaults struct {
	Template           TimeEntryTemplate
	Periods            []calendar.Period
	DefaultValues      []calendar.DayValue
	DayTypes           []calendar.DayType
	AvailablePositions []string
}

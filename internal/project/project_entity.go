package project

import (
	"time"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/calendar"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/company"

	"github.com/google/uuid"
)

// Project carries a denormalized copy of its company's timesheet
// configuration. Those fields are not authoritative here: the company pushes
// new values down after every update.
type Project struct {
	ID                 uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID          uuid.UUID                 `gorm:"column:company_id;type:uuid;not null;index"`
	Name               string                    `gorm:"column:name;type:varchar(255);not null"`
	OwnerID            *uuid.UUID                `gorm:"column:owner_id;type:uuid"`
	Template           company.TimeEntryTemplate `gorm:"column:template;type:jsonb;serializer:json"`
	Periods            []calendar.Period         `gorm:"column:periods;type:jsonb;serializer:json"`
	DefaultValues      []calendar.DayValue       `gorm:"column:default_values;type:jsonb;serializer:json"`
	DayTypes           []calendar.DayType        `gorm:"column:day_types;type:jsonb;serializer:json"`
	AvailablePositions []string                  `gorm:"column:available_positions;type:jsonb;serializer:json"`
	CreatedAt          time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}

// DefaultProjectName is given to the project seeded at company creation.
const DefaultProjectName = "My First Project"

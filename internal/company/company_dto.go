package company

import "github.com/AlexKolonitsky/mifort-timesheet/internal/calendar"

type CreateCompanyRequest struct {
	Name   string   `json:"name" binding:"required"`
	Emails []string `json:"emails" binding:"omitempty,dive,email"`
}

// UpdateCompanyRequest replaces the whole company document. Last write wins;
// ownerId and timestamps are the only fields the caller cannot touch.
type UpdateCompanyRequest struct {
	Name               string              `json:"name" binding:"required"`
	Template           TimeEntryTemplate   `json:"template"`
	Periods            []calendar.Period   `json:"periods"`
	DayTypes           []calendar.DayType  `json:"dayTypes"`
	DefaultValues      []calendar.DayValue `json:"defaultValues"`
	AvailablePositions []string            `json:"availablePositions"`
	Emails             []string            `json:"emails" binding:"omitempty,dive,email"`
}

type CompanyResponse struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	OwnerID            string              `json:"ownerId,omitempty"`
	Template           TimeEntryTemplate   `json:"template"`
	Periods            []calendar.Period   `json:"periods"`
	DayTypes           []calendar.DayType  `json:"dayTypes"`
	DefaultValues      []calendar.DayValue `json:"defaultValues"`
	AvailablePositions []string            `json:"availablePositions"`
	CreatedAt          string              `json:"createdAt,omitempty"`
	UpdatedAt          string              `json:"updatedAt,omitempty"`
}

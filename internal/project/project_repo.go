package project

import (
	"context"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/company"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Project) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Project, error)
	company.ProjectSyncer
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Project, error) {
	var rows []Project
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// CreateDefault seeds the company's first project with the company defaults
// denormalized onto it.
func (r *repository) CreateDefault(
	ctx context.Context,
	companyID uuid.UUID,
	ownerID *uuid.UUID,
	defaults company.ProjectDefaults,
) error {
	p := &Project{
		CompanyID:          companyID,
		Name:               DefaultProjectName,
		OwnerID:            ownerID,
		Template:           defaults.Template,
		Periods:            defaults.Periods,
		DefaultValues:      defaults.DefaultValues,
		DayTypes:           defaults.DayTypes,
		AvailablePositions: defaults.AvailablePositions,
	}
	return r.Create(ctx, p)
}

// SyncCompanyDefaults overwrites exactly the five denormalized columns on
// every project of the company, in one bulk statement. All other project
// fields are untouched. Returns the number of rows updated.
func (r *repository) SyncCompanyDefaults(
	ctx context.Context,
	companyID uuid.UUID,
	defaults company.ProjectDefaults,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Project{}).
		Scopes(tenant.Scope(companyID.String())).
		Select("template", "periods", "default_values", "day_types", "available_positions").
		Updates(&Project{
			Template:           defaults.Template,
			Periods:            defaults.Periods,
			DefaultValues:      defaults.DefaultValues,
			DayTypes:           defaults.DayTypes,
			AvailablePositions: defaults.AvailablePositions,
		})

	return res.RowsAffected, res.Error
}

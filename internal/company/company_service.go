package company

import (
	"context"
	"encoding/json"
	"time"

	companyerrors "github.com/AlexKolonitsky/mifort-timesheet/internal/company/errors"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	companyCacheKeyPrefix = "companies:doc:"
	companyCacheTTL       = 10 * time.Minute
)

func companyCacheKey(id string) string {
	return companyCacheKeyPrefix + id
}

// ProjectSyncer is the project-side collaborator: it seeds the default
// project at company creation and pushes the denormalized company fields
// down to every dependent project on update.
type ProjectSyncer interface {
	CreateDefault(ctx context.Context, companyID uuid.UUID, ownerID *uuid.UUID, defaults ProjectDefaults) error
	SyncCompanyDefaults(ctx context.Context, companyID uuid.UUID, defaults ProjectDefaults) (int64, error)
}

// Provisioner reconciles a company's invitee email list against the user
// directory. It never reports back; failures stay on its side of the fence.
type Provisioner interface {
	ProvisionEmails(ctx context.Context, companyID uuid.UUID, emails []string)
}

type Service interface {
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	GetDefaults(ctx context.Context) Defaults
	Create(ctx context.Context, ownerID string, req CreateCompanyRequest) (*CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)
}

type service struct {
	repo        Repository
	projects    ProjectSyncer
	provisioner Provisioner
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	projects ProjectSyncer,
	provisioner Provisioner,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		repo:        repo,
		projects:    projects,
		provisioner: provisioner,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	key := companyCacheKey(id)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp CompanyResponse
			if json.Unmarshal([]byte(raw), &resp) == nil {
				return &resp, nil
			}
		}
	}

	// Concurrent misses for the same company share one DB round trip.
	v, err, _ := s.sf.Do(key, func() (any, error) {
		comp, err := s.repo.FindByID(ctx, uid)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToResponse(comp)
		s.cacheResponse(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*CompanyResponse), nil
}

func (s *service) GetDefaults(ctx context.Context) Defaults {
	return BuildDefaultCompany(time.Now().UTC())
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateCompanyRequest) (*CompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("create company requested",
		zap.String("name", req.Name),
		zap.Int("invitee_emails", len(req.Emails)),
	)

	defaults := BuildDefaultCompany(time.Now().UTC())
	comp := &Company{
		Name:               req.Name,
		Template:           defaults.Template,
		Periods:            defaults.Periods,
		DayTypes:           defaults.DayTypes,
		DefaultValues:      defaults.DefaultValues,
		AvailablePositions: defaults.AvailablePositions,
	}

	if ownerID != "" {
		uid, err := uuid.Parse(ownerID)
		if err != nil {
			return nil, companyerrors.ErrInvalidOwnerID
		}
		comp.OwnerID = &uid
	}

	if err := s.repo.Save(ctx, comp); err != nil {
		l.Error("create company persist failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	// The response never waits for these.
	s.detach(ctx, "project.create_default", func(ctx context.Context) {
		if s.projects == nil {
			return
		}
		if err := s.projects.CreateDefault(ctx, comp.ID, comp.OwnerID, projectDefaults(comp)); err != nil {
			s.logger.Error("create default project failed",
				zap.String("company_id", comp.ID.String()),
				zap.Error(err),
			)
		}
	})
	s.provisionDetached(ctx, comp.ID, req.Emails)

	l.Debug("company created", zap.String("company_id", comp.ID.String()))
	return mapToResponse(comp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("update company requested", zap.String("company_id", id))

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	// Whole-document replace, last write wins. OwnerID and creation time are
	// the only survivors of the previous revision.
	comp.Name = req.Name
	comp.Template = req.Template
	comp.Periods = req.Periods
	comp.DayTypes = req.DayTypes
	comp.DefaultValues = req.DefaultValues
	comp.AvailablePositions = req.AvailablePositions

	if err := s.repo.Save(ctx, comp); err != nil {
		l.Error("update company persist failed", zap.String("company_id", id), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	s.invalidateCache(ctx, id)

	// The update already succeeded; the cascade outcome is logged only.
	s.detach(ctx, "project.sync_defaults", func(ctx context.Context) {
		if s.projects == nil {
			return
		}
		updated, err := s.projects.SyncCompanyDefaults(ctx, comp.ID, projectDefaults(comp))
		if err != nil {
			s.logger.Error("company project sync failed",
				zap.String("company_id", comp.ID.String()),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("company projects updated",
			zap.String("company_id", comp.ID.String()),
			zap.Int64("projects", updated),
		)
	})
	s.provisionDetached(ctx, comp.ID, req.Emails)

	l.Debug("company updated", zap.String("company_id", id))
	return mapToResponse(comp), nil
}

func (s *service) provisionDetached(ctx context.Context, companyID uuid.UUID, emails []string) {
	if s.provisioner == nil || len(emails) == 0 {
		return
	}
	s.detach(ctx, "user.provision", func(ctx context.Context) {
		s.provisioner.ProvisionEmails(ctx, companyID, emails)
	})
}

// detach runs fn on its own goroutine with a context that survives the
// request. There is no cancellation and no result channel: once launched,
// the task runs to its own completion or failure.
func (s *service) detach(ctx context.Context, name string, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("detached task panicked",
					zap.String("task", name),
					zap.Any("panic", r),
				)
			}
		}()
		fn(ctx)
	}()
}

func (s *service) cacheResponse(ctx context.Context, key string, resp *CompanyResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, companyCacheTTL).Err(); err != nil {
		s.logger.Warn("company cache set failed", zap.Error(err))
	}
}

func (s *service) invalidateCache(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, companyCacheKey(id)).Err(); err != nil {
		s.logger.Warn("company cache invalidation failed",
			zap.String("company_id", id),
			zap.Error(err),
		)
	}
}

func projectDefaults(c *Company) ProjectDefaults {
	return ProjectDefaults{
		Template:           c.Template,
		Periods:            c.Periods,
		DefaultValues:      c.DefaultValues,
		DayTypes:           c.DayTypes,
		AvailablePositions: c.AvailablePositions,
	}
}

func mapToResponse(c *Company) *CompanyResponse {
	resp := &CompanyResponse{
		ID:                 c.ID.String(),
		Name:               c.Name,
		Template:           c.Template,
		Periods:            c.Periods,
		DayTypes:           c.DayTypes,
		DefaultValues:      c.DefaultValues,
		AvailablePositions: c.AvailablePositions,
		CreatedAt:          c.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:          c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if c.OwnerID != nil {
		resp.OwnerID = c.OwnerID.String()
	}
	return resp
}

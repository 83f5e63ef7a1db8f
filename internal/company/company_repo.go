package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/company_repo_mock.go -package=mock . Repository
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Save(ctx context.Context, c *Company) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save inserts when the company has no id yet, assigning a fresh one, and
// overwrites the stored document in place otherwise.
func (r *repository) Save(ctx context.Context, c *Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
		return r.db.WithContext(ctx).Create(c).Error
	}
	return r.db.WithContext(ctx).Save(c).Error
}

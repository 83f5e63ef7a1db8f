package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User, attach func(tx *sql.Tx) error) error
	FindByEmail(ctx context.Context, companyID uuid.UUID, email string) (*User, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the user and runs attach inside the same database
// transaction. The invite outbox row rides along here, so a user is never
// committed without its pending invite and vice versa.
func (r *repository) Create(ctx context.Context, u *User, attach func(tx *sql.Tx) error) error {
	return r.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		if err := gtx.Create(u).Error; err != nil {
			return err
		}
		if attach == nil {
			return nil
		}
		tx, ok := gtx.Statement.ConnPool.(*sql.Tx)
		if !ok {
			return fmt.Errorf("no open transaction to attach to")
		}
		return attach(tx)
	})
}

func (r *repository) FindByEmail(ctx context.Context, companyID uuid.UUID, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID.String())).
		First(&u, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

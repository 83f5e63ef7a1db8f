package user

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const companyEmailConstraint = "uq_users_company_email"

// InviteNotifier records an invite for a freshly created user. It is called
// inside the user's insert transaction, so the user and the invite commit or
// roll back together; delivery is somebody else's job.
type InviteNotifier interface {
	RequestInvite(ctx context.Context, tx *sql.Tx, u *User) error
}

// Provisioner reconciles a company's invitee email list against the user
// directory: every email without a matching (company, email) user gets an
// employee account and an invite. Each email is handled independently, so
// one failure never blocks the rest.
type Provisioner struct {
	repo     Repository
	notifier InviteNotifier
	logger   *zap.Logger
}

func NewProvisioner(repo Repository, notifier InviteNotifier, logger ...*zap.Logger) *Provisioner {
	l := zap.L().Named("user.provisioner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.provisioner")
	}
	return &Provisioner{
		repo:     repo,
		notifier: notifier,
		logger:   l,
	}
}

// ProvisionEmails runs the reconciliation pass. It returns nothing: the
// triggering request has already been answered, so failures are only logged.
func (p *Provisioner) ProvisionEmails(ctx context.Context, companyID uuid.UUID, emails []string) {
	l := contextutil.GetLogger(ctx, p.logger)

	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}

		if err := p.provisionOne(ctx, companyID, email); err != nil {
			l.Error("provision user by email failed",
				zap.String("company_id", companyID.String()),
				zap.String("email", email),
				zap.Error(err),
			)
		}
	}
}

func (p *Provisioner) provisionOne(ctx context.Context, companyID uuid.UUID, email string) error {
	_, err := p.repo.FindByEmail(ctx, companyID, email)
	if err == nil {
		// Already provisioned; no duplicate user, no second invite.
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup user by email: %w", err)
	}

	password, err := temporaryPasswordHash()
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	u := &User{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Email:       email,
		DisplayName: email,
		Role:        RoleEmployee,
		Password:    password,
		IsActive:    true,
	}

	// User row and invite outbox row share one transaction: a failed invite
	// write rolls the user back, and the next pass retries both.
	err = p.repo.Create(ctx, u, func(tx *sql.Tx) error {
		if p.notifier == nil {
			return nil
		}
		return p.notifier.RequestInvite(ctx, tx, u)
	})
	if err != nil {
		if isDuplicateUser(err) {
			// A concurrent pass won the race; the store constraint keeps
			// the pair unique and the winner already sent the invite.
			p.logger.Debug("user already provisioned concurrently",
				zap.String("company_id", companyID.String()),
				zap.String("email", email),
			)
			return nil
		}
		return fmt.Errorf("save user: %w", err)
	}

	p.logger.Info("user provisioned",
		zap.String("company_id", companyID.String()),
		zap.String("email", u.Email),
	)

	return nil
}

// temporaryPasswordHash generates a throwaway credential for a user who has
// never logged in. The invite flow replaces it on first sign-in.
func temporaryPasswordHash() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func isDuplicateUser(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == companyEmailConstraint
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, companyEmailConstraint)
}

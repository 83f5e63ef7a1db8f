package user_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/user"
	userMock "github.com/AlexKolonitsky/mifort-timesheet/internal/user/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	invited []string
	err     error
}

func (n *recordingNotifier) RequestInvite(ctx context.Context, tx *sql.Tx, u *user.User) error {
	n.invited = append(n.invited, u.Email)
	return n.err
}

// runAttach mimics the real repository: the insert succeeds and the attach
// callback runs inside the same transaction, its error aborting the create.
func runAttach(ctx context.Context, u *user.User, attach func(tx *sql.Tx) error) error {
	if attach == nil {
		return nil
	}
	return attach(nil)
}

func TestProvisionEmails_CreatesMissingUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	notifier := &recordingNotifier{}
	prov := user.NewProvisioner(mockRepo, notifier, zap.NewNop())
	ctx := context.Background()

	companyID := uuid.New()

	mockRepo.EXPECT().FindByEmail(ctx, companyID, "new@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, u *user.User, attach func(tx *sql.Tx) error) error {
			assert.Equal(t, companyID, u.CompanyID)
			assert.Equal(t, "new@x.com", u.Email)
			assert.Equal(t, user.RoleEmployee, u.Role)
			assert.True(t, u.IsActive)
			assert.NotEmpty(t, u.Password)
			assert.NotEqual(t, uuid.Nil, u.ID)
			return runAttach(ctx, u, attach)
		})

	prov.ProvisionEmails(ctx, companyID, []string{"new@x.com"})

	assert.Equal(t, []string{"new@x.com"}, notifier.invited)
}

func TestProvisionEmails_InviteWrittenWithCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	notifier := &recordingNotifier{}
	prov := user.NewProvisioner(mockRepo, notifier, zap.NewNop())
	ctx := context.Background()

	companyID := uuid.New()

	mockRepo.EXPECT().FindByEmail(ctx, companyID, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, u *user.User, attach func(tx *sql.Tx) error) error {
			// The invite rides inside the create, never before or after it.
			assert.Empty(t, notifier.invited)
			err := runAttach(ctx, u, attach)
			assert.Equal(t, []string{"a@x.com"}, notifier.invited)
			return err
		})

	prov.ProvisionEmails(ctx, companyID, []string{"a@x.com"})
}

func TestProvisionEmails_InviteFailureAbortsCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	notifier := &recordingNotifier{err: errors.New("outbox insert failed")}
	prov := user.NewProvisioner(mockRepo, notifier, zap.NewNop())
	ctx := context.Background()

	companyID := uuid.New()
	var createErr error

	mockRepo.EXPECT().FindByEmail(ctx, companyID, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, u *user.User, attach func(tx *sql.Tx) error) error {
			createErr = runAttach(ctx, u, attach)
			return createErr
		})

	prov.ProvisionEmails(ctx, companyID, []string{"a@x.com"})

	// The attach error surfaces from Create, rolling the user back; the next
	// reconciliation pass retries both rows together.
	assert.ErrorIs(t, createErr, notifier.err)
}

func TestProvisionEmails_ExistingUserIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	notifier := &recordingNotifier{}
	prov := user.NewProvisioner(mockRepo, notifier, zap.NewNop())
	ctx := context.Background()

	companyID := uuid.New()

	// No Create expectation: an existing user must not be touched.
	mockRepo.EXPECT().FindByEmail(ctx, companyID, "seen@x.com").
		Return(&user.User{ID: uuid.New(), CompanyID: companyID, Email: "seen@x.com"}, nil)

	prov.ProvisionEmails(ctx, companyID, []string{"seen@x.com"})

	assert.Empty(t, notifier.invited, "an already provisioned email gets no second invite")
}

func TestProvisionEmails_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	notifier := &recordingNotifier{}
	prov := user.NewProvisioner(mockRepo, notifier, zap.NewNop())
	ctx := context.Background()

	companyID := uuid.New()
	created := make(map[string]*user.User)

	mockRepo.EXPECT().FindByEmail(ctx, companyID, gomock.Any()).DoAndReturn(
		func(ctx context.Context, companyID uuid.UUID, email string) (*user.User, error) {
			if u, ok := created[email]; ok {
				return u, nil
			}
			return nil, gorm.ErrRecordNotFound
		}).AnyTimes()
	mockRepo.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, u *user.User, attach func(tx *sql.Tx) error) error {
			created[u.Email] = u
			return runAttach(ctx, u, attach)
		}).Times(2)

	emails := []string{"a@x.com", "b@x.com"}
	prov.ProvisionEmails(ctx, companyID, emails)
	prov.ProvisionEmails(ctx, companyID, emails)

	assert.Equal(t, emails, notifier.invited, "each user is invited exactly once")
}

func TestProvisionEmails_ConcurrentDuplicateLosesQuietly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	notifier := &recordingNotifier{}
	prov := user.NewProvisioner(mockRepo, notifier, zap.NewNop())
	ctx := context.Background()

	companyID := uuid.New()

	// The lookup misses but the insert collides: another pass created the
	// user between the two. The constraint violation means "already done".
	mockRepo.EXPECT().FindByEmail(ctx, companyID, "race@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uq_users_company_email",
	})

	prov.ProvisionEmails(ctx, companyID, []string{"race@x.com"})

	assert.Empty(t, notifier.invited, "the race winner already sent the invite")
}

func TestProvisionEmails_FailureDoesNotBlockOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	notifier := &recordingNotifier{}
	prov := user.NewProvisioner(mockRepo, notifier, zap.NewNop())
	ctx := context.Background()

	companyID := uuid.New()

	mockRepo.EXPECT().FindByEmail(ctx, companyID, "broken@x.com").Return(nil, errors.New("connection reset"))
	mockRepo.EXPECT().FindByEmail(ctx, companyID, "fine@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, u *user.User, attach func(tx *sql.Tx) error) error {
			return runAttach(ctx, u, attach)
		})

	prov.ProvisionEmails(ctx, companyID, []string{"broken@x.com", "fine@x.com"})

	assert.Equal(t, []string{"fine@x.com"}, notifier.invited)
}

func TestProvisionEmails_SkipsBlankEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	prov := user.NewProvisioner(mockRepo, &recordingNotifier{}, zap.NewNop())

	// Blank and whitespace-only entries never reach the repository.
	prov.ProvisionEmails(context.Background(), uuid.New(), []string{"", "   "})
}

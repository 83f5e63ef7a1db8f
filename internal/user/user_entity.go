package user

import (
	"time"

	"github.com/google/uuid"
)

// RoleEmployee is the role every provisioned user starts with.
const RoleEmployee = "EMPLOYEE"

// User is keyed by (company_id, email) for provisioning purposes; the
// composite unique index is what makes concurrent provisioning of the same
// email safe.
type User struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_users_company_email"`
	Email       string    `gorm:"column:email;type:text;not null;uniqueIndex:uq_users_company_email"`
	DisplayName string    `gorm:"column:display_name;type:varchar(255)"`
	Role        string    `gorm:"column:role;type:varchar(50);default:EMPLOYEE"`
	Password    string    `gorm:"column:password;type:text;not null"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

package model

import (
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/types"
)

// AdminUser is a back-office account. PasswordHash is a bcrypt hash and
// is redacted from logs.
type AdminUser struct {
	ID           int64
	Email        string
	PasswordHash string `masq:"secret"`
	FullName     string
	Phone        string
	Role         types.UserRole
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSuperAdmin reports whether the user holds the super admin role
func (u *AdminUser) IsSuperAdmin() bool {
	return u.Role == types.RoleSuperAdmin
}

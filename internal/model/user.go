package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleForeman UserRole = "foreman"
)

func (r *UserRole) Scan(value interface{}) error {
	raw, err := enumString(value)
	if err != nil {
		return fmt.Errorf("user role: %w", err)
	}
	switch UserRole(strings.ToLower(raw)) {
	case UserRoleAdmin:
		*r = UserRoleAdmin
	case UserRoleForeman:
		*r = UserRoleForeman
	default:
		return fmt.Errorf("user role: unknown value %q", raw)
	}
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

type User struct {
	ID         uuid.UUID
	TelegramID int64
	Username   *string
	FullName   *string
	Role       UserRole
	IsActive   bool
	CreatedAt  time.Time
}

func (User) TableName() string { return "users" }

func (u User) IsAdmin() bool { return u.Role == UserRoleAdmin }

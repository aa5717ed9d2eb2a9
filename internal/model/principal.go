package model

import "github.com/google/uuid"

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID     uuid.UUID
	TelegramID int64
	Role       UserRole
}

func (p Principal) IsAdmin() bool   { return p.Role == UserRoleAdmin }
func (p Principal) IsForeman() bool { return p.Role == UserRoleForeman }

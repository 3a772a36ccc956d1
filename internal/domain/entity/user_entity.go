package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// HashedPassword holds a bcrypt digest; the raw password never touches
// this struct.
type User struct {
	ID             string
	Email          string
	FullName       string
	HashedPassword string
	Role           Role
	Disabled       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicView returns the fields safe to expose over the API.
func (u *User) PublicView() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"full_name":  u.FullName,
		"role":       u.Role,
		"disabled":   u.Disabled,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

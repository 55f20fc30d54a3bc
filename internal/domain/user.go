package domain

import "time"

type UserRole string

const (
	RoleClient      UserRole = "client"
	RoleProvider    UserRole = "provider"
	RoleStudioOwner UserRole = "studio_owner"
	RoleAdmin       UserRole = "admin"
)

// IsProvider reports whether the role owns a calendar of availability and
// bookings. Trainers and solo practitioners both map to RoleProvider; studio
// owners manage a studio but keep a personal calendar too.
func (r UserRole) IsProvider() bool {
	return r == RoleProvider || r == RoleStudioOwner
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

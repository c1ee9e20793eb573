package user

import (
	"time"
)

// Snapshot is the session-safe projection of a user: the fields a client is
// allowed to see, and exactly what gets denormalized into the session store.
type Snapshot struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Email      string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string     `gorm:"size:128;not null" json:"-"`
	Admin      bool       `gorm:"not null;default:false" json:"admin"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (u *User) Snapshot() Snapshot {
	return Snapshot{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Admin: u.Admin,
	}
}

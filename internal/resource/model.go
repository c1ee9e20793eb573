package resource

import (
	"time"

	"gorm.io/datatypes"

	"abyos-admin/internal/user"
)

type Resource struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Meta      datatypes.JSON `json:"meta,omitempty"`
	Users     []user.User    `gorm:"many2many:user_resources" json:"users,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// UserResource is the assignment join row. The composite primary key rejects
// duplicate assignment of the same pair.
type UserResource struct {
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	ResourceID uint      `gorm:"primaryKey" json:"resource_id"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values for UserProfile.Role
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile holds the public-facing identity of a user. A profile is
// created lazily on first profile fetch if the user has none yet.
type UserProfile struct {
	ID                   uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID               uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username             string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	AvatarURL            string     `gorm:"size:255" json:"avatar_url"`
	Role                 string     `gorm:"size:20;not null;default:'user'" json:"role"`
	SubscriptionTier     string     `gorm:"size:20;not null;default:'free'" json:"subscription_tier"`
	SubscriptionExpires  *time.Time `json:"subscription_expires,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

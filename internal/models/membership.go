package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAuthor      Role = "AUTHOR"
	RoleContributor Role = "CONTRIBUTOR"
)

// Membership links a user to a project. A (user, project) pair appears at most
// once, and each project has exactly one AUTHOR row matching Project.AuthorID.
type Membership struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_project" json:"user_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_project;uniqueIndex:idx_memberships_project_author,where:role = 'AUTHOR'" json:"project_id"`
	Role      Role      `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_time"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

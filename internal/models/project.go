package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectType string

const (
	ProjectTypeBackEnd  ProjectType = "back-end"
	ProjectTypeFrontEnd ProjectType = "front-end"
	ProjectTypeIOS      ProjectType = "iOS"
	ProjectTypeAndroid  ProjectType = "Android"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeBackEnd, ProjectTypeFrontEnd, ProjectTypeIOS, ProjectTypeAndroid:
		return true
	}
	return false
}

// Project is the root of the hierarchy. AuthorID never changes after creation.
type Project struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"size:50;not null" json:"name"`
	Description string      `gorm:"size:1200" json:"description"`
	Type        ProjectType `gorm:"size:20;not null" json:"type"`
	AuthorID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt   time.Time   `json:"created_time"`
	UpdatedAt   time.Time   `json:"updated_time"`

	Author      User         `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Memberships []Membership `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Issues      []Issue      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Project) OwnerProjectID() uuid.UUID { return p.ID }
func (p *Project) AuthorUserID() uuid.UUID   { return p.AuthorID }

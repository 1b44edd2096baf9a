package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Description string    `gorm:"size:1200;not null" json:"description"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	IssueID     uuid.UUID `gorm:"type:uuid;not null;index" json:"issue_id"`
	CreatedAt   time.Time `json:"created_time"`
	UpdatedAt   time.Time `json:"updated_time"`

	Issue Issue `gorm:"foreignKey:IssueID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// OwnerProjectID walks comment -> issue -> project. The Issue association must
// be loaded; an unloaded parent yields uuid.Nil, which no membership matches.
func (c *Comment) OwnerProjectID() uuid.UUID { return c.Issue.ProjectID }
func (c *Comment) AuthorUserID() uuid.UUID   { return c.AuthorID }

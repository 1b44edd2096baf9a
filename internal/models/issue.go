package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueType string

const (
	IssueTypeBug     IssueType = "BUG"
	IssueTypeFeature IssueType = "FEATURE"
	IssueTypeTask    IssueType = "TASK"
)

func (t IssueType) Valid() bool {
	return t == IssueTypeBug || t == IssueTypeFeature || t == IssueTypeTask
}

type IssueLevel string

const (
	IssueLevelLow    IssueLevel = "LOW"
	IssueLevelMedium IssueLevel = "MEDIUM"
	IssueLevelHigh   IssueLevel = "HIGH"
)

func (l IssueLevel) Valid() bool {
	return l == IssueLevelLow || l == IssueLevelMedium || l == IssueLevelHigh
}

type IssueStatus string

const (
	IssueStatusToDo       IssueStatus = "ToDo"
	IssueStatusInProgress IssueStatus = "InProgress"
	IssueStatusFinished   IssueStatus = "Finished"
)

func (s IssueStatus) Valid() bool {
	return s == IssueStatusToDo || s == IssueStatusInProgress || s == IssueStatusFinished
}

type Issue struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string      `gorm:"size:50;not null" json:"name"`
	Type      IssueType   `gorm:"size:20;not null" json:"type"`
	Level     IssueLevel  `gorm:"size:20;not null" json:"level"`
	Status    IssueStatus `gorm:"size:20;not null" json:"status"`
	AuthorID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"author_id"`
	ProjectID uuid.UUID   `gorm:"type:uuid;not null;index" json:"project_id"`
	CreatedAt time.Time   `json:"created_time"`
	UpdatedAt time.Time   `json:"updated_time"`

	AssignedUsers []User    `gorm:"many2many:issue_assignees;joinForeignKey:IssueID;joinReferences:UserID" json:"assigned_users"`
	Comments      []Comment `gorm:"foreignKey:IssueID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Issue) OwnerProjectID() uuid.UUID { return i.ProjectID }
func (i *Issue) AuthorUserID() uuid.UUID   { return i.AuthorID }

// IssueAssignee is a row of the issue_assignees join table. Rows are written
// explicitly so the membership check and the write share one transaction.
type IssueAssignee struct {
	IssueID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (IssueAssignee) TableName() string { return "issue_assignees" }

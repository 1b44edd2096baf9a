package access

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberOf returns a GORM scope restricting a projects query to projects the
// user holds a membership in.
func MemberOf(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN memberships ON memberships.project_id = projects.id AND memberships.user_id = ?", userID)
	}
}

// InProject scopes a query on a table with a project_id column.
func InProject(projectID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("project_id = ?", projectID)
	}
}

// OnIssue scopes a query on a table with an issue_id column.
func OnIssue(issueID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("issue_id = ?", issueID)
	}
}

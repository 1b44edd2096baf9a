package access

import (
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/database"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), database.Options())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "x", Age: 30}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProject(t *testing.T, db *gorm.DB, author *models.User) *models.Project {
	t.Helper()
	project := &models.Project{Name: "Project " + author.Username, Type: models.ProjectTypeBackEnd, AuthorID: author.ID}
	require.NoError(t, db.Create(project).Error)
	addMember(t, db, author, project, models.RoleAuthor)
	return project
}

func addMember(t *testing.T, db *gorm.DB, user *models.User, project *models.Project, role models.Role) {
	t.Helper()
	require.NoError(t, db.Create(&models.Membership{UserID: user.ID, ProjectID: project.ID, Role: role}).Error)
}

func createIssue(t *testing.T, db *gorm.DB, author *models.User, project *models.Project) *models.Issue {
	t.Helper()
	issue := &models.Issue{
		Name:      "Issue",
		Type:      models.IssueTypeBug,
		Level:     models.IssueLevelLow,
		Status:    models.IssueStatusToDo,
		AuthorID:  author.ID,
		ProjectID: project.ID,
	}
	require.NoError(t, db.Create(issue).Error)
	return issue
}

func createComment(t *testing.T, db *gorm.DB, author *models.User, issue *models.Issue) *models.Comment {
	t.Helper()
	comment := &models.Comment{Description: "looks good", AuthorID: author.ID, IssueID: issue.ID}
	require.NoError(t, db.Create(comment).Error)
	comment.Issue = *issue
	return comment
}


package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/database"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/events"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	events   *events.Recorder
	auth     *AuthService
	users    *UserService
	projects *ProjectService
	issues   *IssueService
	comments *CommentService
}

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

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	engine := access.NewEngine(access.NewResolver(db))
	scope := NewScope(db, engine)
	rec := &events.Recorder{}

	return &testEnv{
		db:       db,
		events:   rec,
		auth:     NewAuthService(db, testConfig()),
		users:    NewUserService(db),
		projects: NewProjectService(db, engine, scope, rec),
		issues:   NewIssueService(db, engine, scope, rec),
		comments: NewCommentService(db, engine, scope, rec),
	}
}

func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Username:        username,
		Password:        "password123",
		Age:             30,
		CanDataBeShared: true,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) project(t *testing.T, author *models.User) *models.Project {
	t.Helper()
	project, err := e.projects.Create(context.Background(), author, &dto.CreateProjectRequest{
		Name:        "SoftDesk",
		Description: "issue tracker",
		Type:        models.ProjectTypeBackEnd,
	})
	require.NoError(t, err)
	return project
}

func (e *testEnv) contributor(t *testing.T, author *models.User, project *models.Project, user *models.User) {
	t.Helper()
	_, err := e.projects.AddContributor(context.Background(), author, project.ID, &dto.ContributorRequest{UserID: user.ID})
	require.NoError(t, err)
}

func (e *testEnv) issue(t *testing.T, author *models.User, project *models.Project, assignees ...*models.User) *models.Issue {
	t.Helper()
	req := &dto.CreateIssueRequest{
		Name:  "Login fails",
		Type:  models.IssueTypeBug,
		Level: models.IssueLevelHigh,
	}
	for _, u := range assignees {
		req.AssignedUsers = append(req.AssignedUsers, u.ID)
	}
	issue, err := e.issues.Create(context.Background(), author, project.ID, req)
	require.NoError(t, err)
	return issue
}

func (e *testEnv) comment(t *testing.T, author *models.User, issue *models.Issue) *models.Comment {
	t.Helper()
	comment, err := e.comments.Create(context.Background(), author, issue.ProjectID, issue.ID, &dto.CreateCommentRequest{Description: "reproduced"})
	require.NoError(t, err)
	return comment
}

func count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T { return &v }

package access

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_IsMember(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	r := NewResolver(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	project := createProject(t, db, alice)
	addMember(t, db, bob, project, models.RoleContributor)

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{name: "author", user: alice, want: true},
		{name: "contributor", user: bob, want: true},
		{name: "outsider", user: carol, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.IsMember(ctx, tt.user.ID, project.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_IsMember_FollowsRowsNotAuthorField(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	r := NewResolver(db)

	alice := createUser(t, db, "alice")
	project := &models.Project{Name: "No rows", Type: models.ProjectTypeIOS, AuthorID: alice.ID}
	require.NoError(t, db.Create(project).Error)

	member, err := r.IsMember(ctx, alice.ID, project.ID)
	require.NoError(t, err)
	assert.False(t, member, "author field alone must not grant membership")
}

func TestResolver_RoleOf(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	r := NewResolver(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	project := createProject(t, db, alice)
	addMember(t, db, bob, project, models.RoleContributor)

	role, err := r.RoleOf(ctx, alice.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAuthor, role)

	role, err = r.RoleOf(ctx, bob.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleContributor, role)

	role, err = r.RoleOf(ctx, carol.ID, project.ID)
	require.NoError(t, err)
	assert.Empty(t, role)

	role, err = r.RoleOf(ctx, alice.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, role)
}

func TestResolver_MembersOf(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	r := NewResolver(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	createUser(t, db, "carol")
	project := createProject(t, db, alice)
	addMember(t, db, bob, project, models.RoleContributor)

	members, err := r.MembersOf(ctx, project.ID)
	require.NoError(t, err)

	var names []string
	for _, m := range members {
		names = append(names, m.Username)
	}
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)
}

func TestResolver_ProjectsOf(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	r := NewResolver(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	p1 := createProject(t, db, alice)
	p2 := createProject(t, db, bob)
	createProject(t, db, createUser(t, db, "carol"))
	addMember(t, db, alice, p2, models.RoleContributor)

	projects, err := r.ProjectsOf(ctx, alice.ID)
	require.NoError(t, err)

	var ids []uuid.UUID
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{p1.ID, p2.ID}, ids)
}

func TestResolver_ProjectOfIssueAndComment(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	r := NewResolver(db)

	alice := createUser(t, db, "alice")
	project := createProject(t, db, alice)
	issue := createIssue(t, db, alice, project)
	comment := createComment(t, db, alice, issue)

	got, err := r.ProjectOfIssue(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got)

	got, err = r.ProjectOfComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got)

	_, err = r.ProjectOfIssue(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.ProjectOfComment(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMembership_UniquePerUserAndProject(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	project := createProject(t, db, alice)
	addMember(t, db, bob, project, models.RoleContributor)

	err := db.Create(&models.Membership{UserID: bob.ID, ProjectID: project.ID, Role: models.RoleContributor}).Error
	assert.Error(t, err)
}

func TestMembership_SingleAuthorPerProject(t *testing.T) {
	db := setupTestDB(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	project := createProject(t, db, alice)

	err := db.Create(&models.Membership{UserID: bob.ID, ProjectID: project.ID, Role: models.RoleAuthor}).Error
	assert.Error(t, err)
}

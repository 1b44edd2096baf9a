package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/events"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateAddsAuthorMembership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	project := env.project(t, alice)

	assert.Equal(t, alice.ID, project.AuthorID)
	var memberships []models.Membership
	require.NoError(t, env.db.Where("project_id = ?", project.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, alice.ID, memberships[0].UserID)
	assert.Equal(t, models.RoleAuthor, memberships[0].Role)
	assert.Equal(t, []string{events.ProjectCreated}, env.events.Types())
}

func TestProjectService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateProjectRequest
	}{
		{name: "missing name", req: dto.CreateProjectRequest{Type: models.ProjectTypeIOS}},
		{name: "unknown type", req: dto.CreateProjectRequest{Name: "P", Type: "desktop"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.projects.Create(ctx, alice, &tt.req)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}

	_, err := env.projects.Create(ctx, nil, &dto.CreateProjectRequest{Name: "P", Type: models.ProjectTypeIOS})
	assert.ErrorIs(t, err, access.ErrNotAuthenticated)
	assert.Zero(t, count(t, env.db, &models.Project{}, "1 = 1"))
}

func TestProjectService_ListIsScopedToMembership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()

	mine := env.project(t, alice)
	shared := env.project(t, bob)
	env.project(t, bob)
	env.contributor(t, bob, shared, alice)

	projects, err := env.projects.List(ctx, alice)
	require.NoError(t, err)
	ids := []uuid.UUID{}
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{mine.ID, shared.ID}, ids)
}

func TestProjectService_GetAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")
	ctx := context.Background()
	project := env.project(t, alice)
	env.contributor(t, alice, project, bob)

	got, err := env.projects.Get(ctx, bob, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.Name, got.Name)

	_, err = env.projects.Get(ctx, carol, project.ID)
	assert.ErrorIs(t, err, access.ErrNotAContributor)

	_, err = env.projects.Get(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, access.ErrNotFound)

	_, err = env.projects.Update(ctx, bob, project.ID, &dto.UpdateProjectRequest{Name: ptr("Renamed")})
	assert.ErrorIs(t, err, access.ErrNotOwner)

	_, err = env.projects.Update(ctx, carol, project.ID, &dto.UpdateProjectRequest{Name: ptr("Renamed")})
	assert.ErrorIs(t, err, access.ErrNotAContributor)

	updated, err := env.projects.Update(ctx, alice, project.ID, &dto.UpdateProjectRequest{
		Name: ptr("Renamed"),
		Type: ptr(models.ProjectTypeAndroid),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.ProjectTypeAndroid, updated.Type)
	assert.Equal(t, alice.ID, updated.AuthorID)
	assert.Equal(t, project.Description, updated.Description)
}

func TestProjectService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()
	project := env.project(t, alice)
	other := env.project(t, bob)
	env.contributor(t, alice, project, bob)
	issue := env.issue(t, bob, project, alice, bob)
	env.comment(t, alice, issue)
	untouched := env.issue(t, bob, other, bob)

	err := env.projects.Delete(ctx, bob, project.ID)
	assert.ErrorIs(t, err, access.ErrNotOwner)

	require.NoError(t, env.projects.Delete(ctx, alice, project.ID))

	assert.Zero(t, count(t, env.db, &models.Project{}, "id = ?", project.ID))
	assert.Zero(t, count(t, env.db, &models.Membership{}, "project_id = ?", project.ID))
	assert.Zero(t, count(t, env.db, &models.Issue{}, "project_id = ?", project.ID))
	assert.Zero(t, count(t, env.db, &models.Comment{}, "issue_id = ?", issue.ID))
	assert.Zero(t, count(t, env.db, &models.IssueAssignee{}, "issue_id = ?", issue.ID))

	assert.EqualValues(t, 1, count(t, env.db, &models.Issue{}, "id = ?", untouched.ID))
	assert.EqualValues(t, 1, count(t, env.db, &models.IssueAssignee{}, "issue_id = ?", untouched.ID))
	assert.EqualValues(t, 1, count(t, env.db, &models.Membership{}, "project_id = ?", other.ID))
}

func TestProjectService_AddContributor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")
	ctx := context.Background()
	project := env.project(t, alice)

	membership, err := env.projects.AddContributor(ctx, alice, project.ID, &dto.ContributorRequest{UserID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, models.RoleContributor, membership.Role)
	assert.Equal(t, "bob", membership.User.Username)

	_, err = env.projects.AddContributor(ctx, alice, project.ID, &dto.ContributorRequest{UserID: bob.ID})
	assert.ErrorIs(t, err, access.ErrAlreadyMember)

	_, err = env.projects.AddContributor(ctx, alice, project.ID, &dto.ContributorRequest{UserID: alice.ID})
	assert.ErrorIs(t, err, access.ErrAlreadyMember)

	_, err = env.projects.AddContributor(ctx, bob, project.ID, &dto.ContributorRequest{UserID: carol.ID})
	assert.ErrorIs(t, err, access.ErrNotOwner)

	_, err = env.projects.AddContributor(ctx, carol, project.ID, &dto.ContributorRequest{UserID: carol.ID})
	assert.ErrorIs(t, err, access.ErrNotAContributor)

	_, err = env.projects.AddContributor(ctx, alice, project.ID, &dto.ContributorRequest{UserID: uuid.New()})
	assert.ErrorIs(t, err, access.ErrNotFound)

	assert.EqualValues(t, 2, count(t, env.db, &models.Membership{}, "project_id = ?", project.ID))
}

func TestProjectService_Contributors(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")
	ctx := context.Background()
	project := env.project(t, alice)
	env.contributor(t, alice, project, bob)

	list, err := env.projects.Contributors(ctx, bob, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	usernames := []string{list[0].User.Username, list[1].User.Username}
	assert.ElementsMatch(t, []string{"alice", "bob"}, usernames)

	_, err = env.projects.Contributors(ctx, carol, project.ID)
	assert.ErrorIs(t, err, access.ErrNotFound)
}

func TestProjectService_RemoveContributor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")
	ctx := context.Background()
	project := env.project(t, alice)
	env.contributor(t, alice, project, bob)
	env.contributor(t, alice, project, carol)
	issue := env.issue(t, alice, project, alice, bob)

	t.Run("author membership is never removable", func(t *testing.T) {
		for _, requester := range []*models.User{alice, bob, carol} {
			err := env.projects.RemoveContributor(ctx, requester, project.ID, &dto.ContributorRequest{UserID: alice.ID})
			assert.ErrorIs(t, err, access.ErrCannotRemoveOwner, requester.Username)
		}
	})

	t.Run("contributor cannot remove others", func(t *testing.T) {
		err := env.projects.RemoveContributor(ctx, carol, project.ID, &dto.ContributorRequest{UserID: bob.ID})
		assert.ErrorIs(t, err, access.ErrNotOwner)
	})

	t.Run("unknown member", func(t *testing.T) {
		err := env.projects.RemoveContributor(ctx, alice, project.ID, &dto.ContributorRequest{UserID: uuid.New()})
		assert.ErrorIs(t, err, access.ErrNotFound)
	})

	t.Run("author removes contributor and their assignments", func(t *testing.T) {
		require.NoError(t, env.projects.RemoveContributor(ctx, alice, project.ID, &dto.ContributorRequest{UserID: bob.ID}))

		member, err := access.NewResolver(env.db).IsMember(ctx, bob.ID, project.ID)
		require.NoError(t, err)
		assert.False(t, member)

		got, err := env.issues.Get(ctx, alice, project.ID, issue.ID)
		require.NoError(t, err)
		require.Len(t, got.AssignedUsers, 1)
		assert.Equal(t, alice.ID, got.AssignedUsers[0].ID)
	})

	assert.Contains(t, env.events.Types(), events.ContributorRemoved)
}

package repository_test

import (
	"context"
	"testing"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/repository"
	"github.com/jefanko/app-updates/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_ListForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNotificationRepository(db)

	testutil.CreateTestNotification(t, db, "owner@example.com", false)
	testutil.CreateTestNotification(t, db, "owner@example.com", true)
	testutil.CreateTestNotification(t, db, "other@example.com", false)

	items, err := repo.ListForUser(context.Background(), "owner@example.com")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, n := range items {
		assert.Equal(t, "owner@example.com", n.UserEmail)
	}
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	n := testutil.CreateTestNotification(t, db, "owner@example.com", false)
	require.NoError(t, repo.MarkAsRead(ctx, n.ID))

	got, err := repo.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
}

func TestNotificationRepository_MarkAllAsRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	testutil.CreateTestNotification(t, db, "owner@example.com", false)
	testutil.CreateTestNotification(t, db, "owner@example.com", false)
	other := testutil.CreateTestNotification(t, db, "other@example.com", false)

	count, err := repo.CountUnread(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.MarkAllAsRead(ctx, "owner@example.com"))

	count, err = repo.CountUnread(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := repo.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead, "other recipients are untouched")
}

func TestCommentRepository_ListByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCommentRepository(db)
	ctx := context.Background()
	project := testutil.CreateTestProject(t, db, "Panel", nil)

	_, err := repo.Insert(ctx, domain.Comment{ProjectID: project.ID, UserEmail: "a@example.com", Content: "first"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, domain.Comment{ProjectID: "11111111-1111-1111-1111-111111111111", Content: "elsewhere"})
	require.NoError(t, err)

	items, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].Content)
}

func TestChecklistRepository_UpdateItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewChecklistRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, domain.Checklist{Org: domain.OrgAI, Name: "Tender docs"})
	require.NoError(t, err)

	err = repo.Update(ctx, id, map[string]interface{}{
		"items": domain.ChecklistItems{
			{ID: "i1", Requirement: "NPWP", Checked: true},
			{ID: "i2", Requirement: "SIUP"},
		},
		"deficiencies": "SIUP missing",
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "SIUP missing", got.Deficiencies)
	assert.Equal(t, 50, got.Stats().Percent)

	byOrg, err := repo.ListByOrg(ctx, domain.OrgAI)
	require.NoError(t, err)
	assert.Len(t, byOrg, 1)
}

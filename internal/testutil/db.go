// Package testutil holds helpers shared by package tests
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jefanko/app-updates/internal/database"
	"github.com/jefanko/app-updates/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an isolated in-memory SQLite database with every tracker
// table migrated. Each call gets its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateTestClient inserts a client and returns it
func CreateTestClient(t *testing.T, db *gorm.DB, name string, org domain.Org) domain.Client {
	t.Helper()
	client := domain.Client{
		ID:   uuid.New().String(),
		Name: name,
		Org:  org,
	}
	require.NoError(t, db.Create(&client).Error)
	return client
}

// CreateTestProject inserts a project and returns it
func CreateTestProject(t *testing.T, db *gorm.DB, name string, creator *domain.CreatorRef) domain.Project {
	t.Helper()
	project := domain.Project{
		ID:           uuid.New().String(),
		Name:         name,
		Org:          domain.OrgINA,
		TenderStatus: domain.TenderStatusInProgress,
		Milestones:   domain.Milestones{},
		CreatedBy:    creator,
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}

// CreateTestNotification inserts a notification for the given recipient
func CreateTestNotification(t *testing.T, db *gorm.DB, email string, read bool) domain.Notification {
	t.Helper()
	n := domain.Notification{
		ID:             uuid.New().String(),
		UserEmail:      email,
		ProjectID:      uuid.New().String(),
		ProjectName:    "Test Project",
		CommentID:      uuid.New().String(),
		CommenterName:  "Tester",
		ContentPreview: "hello",
		IsRead:         read,
	}
	require.NoError(t, db.Create(&n).Error)
	return n
}

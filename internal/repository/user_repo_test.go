package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harshith-dev/coursehub-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseModule{},
		&models.Assignment{},
		&models.Enrollment{},
	))
	return db
}

func TestUserRepositoryCreateRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	alice := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, repo.Create(context.Background(), &alice))
	require.NotZero(t, alice.ID)

	sameName := models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.ErrorIs(t, repo.Create(context.Background(), &sameName), ErrDuplicateUsername)

	sameEmail := models.User{Username: "other", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.ErrorIs(t, repo.Create(context.Background(), &sameEmail), ErrDuplicateEmail)
}

func TestUserRepositoryUsernameFreedBySoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	alice := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, repo.Create(context.Background(), &alice))

	alice.MarkDeleted(99, time.Now())
	require.NoError(t, repo.Update(context.Background(), &alice))

	again := models.User{Username: "alice", Email: "alice2@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, repo.Create(context.Background(), &again))
	require.NotEqual(t, alice.ID, again.ID)
}

func TestUserRepositoryFindExcludesSoftDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	alice := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, repo.Create(context.Background(), &alice))

	alice.MarkDeleted(99, time.Now())
	require.NoError(t, repo.Update(context.Background(), &alice))

	_, err := repo.FindByID(context.Background(), alice.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByUsername(context.Background(), "alice")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The *Any variant still sees the row for audit display.
	found, err := repo.FindByIDAny(context.Background(), alice.ID)
	require.NoError(t, err)
	require.True(t, found.IsDeleted())
	require.Equal(t, uint(99), *found.DeletedBy)
}

func TestUserRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	users := []models.User{
		{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleMentor, CreatedAt: time.Now().Add(-3 * time.Hour)},
		{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Role: models.RoleUser, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{Username: "carol", Email: "carol@example.com", PasswordHash: "x", Role: models.RoleUser, CreatedAt: time.Now().Add(-time.Hour)},
	}
	for i := range users {
		require.NoError(t, repo.Create(context.Background(), &users[i]))
	}

	mentors, total, err := repo.List(context.Background(), UserFilter{Role: models.RoleMentor, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "alice", mentors[0].Username)

	searched, total, err := repo.List(context.Background(), UserFilter{Search: "CAROL", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "carol", searched[0].Username)

	paged, total, err := repo.List(context.Background(), UserFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 1)
}

func TestUserRepositoryTakenChecksIgnoreDeletedAndSelf(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	alice := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, repo.Create(context.Background(), &alice))

	taken, err := repo.EmailTaken(context.Background(), "alice@example.com", 0)
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = repo.EmailTaken(context.Background(), "alice@example.com", alice.ID)
	require.NoError(t, err)
	require.False(t, taken)

	alice.MarkDeleted(1, time.Now())
	require.NoError(t, repo.Update(context.Background(), &alice))

	taken, err = repo.UsernameTaken(context.Background(), "alice", 0)
	require.NoError(t, err)
	require.False(t, taken)
}

func TestUserRepositoryCountByRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	admin := models.User{Username: "root", Email: "root@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, repo.Create(context.Background(), &admin))

	count, err := repo.CountByRole(context.Background(), models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	admin.MarkDeleted(1, time.Now())
	require.NoError(t, repo.Update(context.Background(), &admin))

	count, err = repo.CountByRole(context.Background(), models.RoleAdmin)
	require.NoError(t, err)
	require.Zero(t, count)
}

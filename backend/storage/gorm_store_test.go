package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coursehub/backend/models"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("k", "v1"))
	require.NoError(t, store.Set("k", "v2"))
	v, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, store.Remove("k"))
	_, ok, err = store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGatewayOverGormStore(t *testing.T) {
	g := NewGateway(newSQLiteStore(t))

	require.NoError(t, g.InitSampleData())
	require.NoError(t, g.InitSampleData())

	course, err := g.CourseByID("1")
	require.NoError(t, err)
	seeded := len(g.ReviewsByCourse(course.ID))
	require.Equal(t, 2, seeded)

	_, err = g.AddReview(models.Review{CourseID: course.ID, Rating: 2, Title: "Meh", Text: "Too fast for me"})
	require.NoError(t, err)

	assert.Len(t, g.ReviewsByCourse(course.ID), seeded+1)
	course, err = g.CourseByID("1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, course.Rating)
}

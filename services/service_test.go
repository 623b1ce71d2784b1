package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quizquest/models"
)

// newTestDB opens a per-test in-memory database and migrates every model.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Student{},
		&models.Report{},
		&models.Connection{},
		&models.Course{},
		&models.Topic{},
		&models.Settings{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role, name, email string) *models.User {
	t.Helper()
	user := models.User{Role: role, Name: name, Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// Package testutil holds shared helpers for package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/database"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite database with the schema applied.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open sqlite test database")
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateTestSubmission stores a submission with sensible defaults.
func CreateTestSubmission(t *testing.T, db *gorm.DB, orderID string, createdAt time.Time) *domain.Submission {
	t.Helper()
	s := &domain.Submission{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		OrderID:       orderID,
		ServiceType:   "office-cleaning",
		ServiceTitle:  "Úklid kanceláří",
		CustomerName:  "Jana Nováková",
		CustomerEmail: "jana@example.cz",
		PostalCode:    "110 00",
		Region:        "praha",
		RegularPrice:  7172.6,
		TotalPrice:    7172.6,
		Currency:      "CZK",
		Hash:          "h1test",
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

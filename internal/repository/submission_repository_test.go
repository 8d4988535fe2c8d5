package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/repository"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var may12 = time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)

// ============================================================================
// Create / Get Tests
// ============================================================================

func TestSubmissionRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)
	ctx := context.Background()

	created := testutil.CreateTestSubmission(t, db, "HH-20250512-00000001", may12)

	got, err := repo.GetByOrderID(ctx, "HH-20250512-00000001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "jana@example.cz", got.CustomerEmail)
	assert.InDelta(t, 7172.6, got.TotalPrice, 0.001)
	assert.Nil(t, got.EmailSentAt)
}

func TestSubmissionRepository_GetByOrderID_NotFound(t *testing.T) {
	repo := repository.NewSubmissionRepository(testutil.SetupTestDB(t))

	_, err := repo.GetByOrderID(context.Background(), "HH-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionRepository_Create_DuplicateOrderID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)
	existing := testutil.CreateTestSubmission(t, db, "HH-20250512-00000002", may12)

	dup := *existing
	dup.ID = uuid.Nil
	err := repo.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateOrderID)
}

// ============================================================================
// Listing Tests
// ============================================================================

func TestSubmissionRepository_ListBetween(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)

	testutil.CreateTestSubmission(t, db, "HH-before", may12.Add(-24*time.Hour))
	testutil.CreateTestSubmission(t, db, "HH-late", may12.Add(3*time.Hour))
	testutil.CreateTestSubmission(t, db, "HH-early", may12)
	testutil.CreateTestSubmission(t, db, "HH-next-day", may12.Add(24*time.Hour))

	day := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	got, err := repo.ListBetween(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "HH-early", got[0].OrderID)
	assert.Equal(t, "HH-late", got[1].OrderID)
}

func TestSubmissionRepository_MarkEmailSent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)
	ctx := context.Background()
	testutil.CreateTestSubmission(t, db, "HH-mail", may12)

	require.NoError(t, repo.MarkEmailSent(ctx, "HH-mail", may12.Add(time.Minute)))

	got, err := repo.GetByOrderID(ctx, "HH-mail")
	require.NoError(t, err)
	require.NotNil(t, got.EmailSentAt)

	assert.ErrorIs(t, repo.MarkEmailSent(ctx, "HH-other", may12), gorm.ErrRecordNotFound)
}

func TestSubmissionRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)
	ctx := context.Background()
	testutil.CreateTestSubmission(t, db, "HH-gone", may12)
	testutil.CreateTestSubmission(t, db, "HH-kept", may12)

	require.NoError(t, repo.Delete(ctx, "HH-gone"))

	_, err := repo.GetByOrderID(ctx, "HH-gone")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetByOrderID(ctx, "HH-kept")
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, "HH-gone"), gorm.ErrRecordNotFound)

	recreated := testutil.CreateTestSubmission(t, db, "HH-gone", may12)
	assert.Equal(t, "HH-gone", recreated.OrderID)
}

package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"gorm.io/gorm"
)

// ErrDuplicateOrderID is returned when a submission with the same order id exists.
var ErrDuplicateOrderID = errors.New("duplicate order id")

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	err := r.db.WithContext(ctx).Create(submission).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateOrderID
	}
	return err
}

func (r *SubmissionRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Submission, error) {
	var submission domain.Submission
	err := r.db.WithContext(ctx).First(&submission, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListBetween returns submissions created in [from, to), oldest first
func (r *SubmissionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Submission, error) {
	var submissions []domain.Submission
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

// MarkEmailSent records when the offer email went out
func (r *SubmissionRepository) MarkEmailSent(ctx context.Context, orderID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("order_id = ?", orderID).
		Update("email_sent_at", at.UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the submission with the given order id so it can be
// submitted again.
func (r *SubmissionRepository) Delete(ctx context.Context, orderID string) error {
	res := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&domain.Submission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

package recorder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) CreateRecording(ctx context.Context, rec *Recording) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *Store) GetRecording(ctx context.Context, id uuid.UUID) (*Recording, error) {
	var rec Recording
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CompleteRecording finalizes a stopped recording with its rendered
// script and raw event count.
func (s *Store) CompleteRecording(ctx context.Context, id uuid.UUID, script string, eventCount int) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&Recording{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      StatusCompleted,
			"script":      script,
			"event_count": eventCount,
			"stopped_at":  now,
			"updated_at":  now,
		}).Error
}

func (s *Store) UpdateRecordingStatus(ctx context.Context, id uuid.UUID, status RecordingStatus) error {
	return s.db.WithContext(ctx).Model(&Recording{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// MarkArchived records the artifact storage key after upload.
func (s *Store) MarkArchived(ctx context.Context, id uuid.UUID, storageKey string) error {
	return s.db.WithContext(ctx).Model(&Recording{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      StatusArchived,
			"storage_key": storageKey,
			"updated_at":  time.Now(),
		}).Error
}

func (s *Store) ListRecordings(ctx context.Context,
	status *RecordingStatus, start, end *time.Time,
	offset, limit int) ([]Recording, error) {

	query := s.db.WithContext(ctx).Model(&Recording{})

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if start != nil {
		query = query.Where("started_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("started_at <= ?", *end)
	}

	var recs []Recording
	err := query.Order("started_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&recs).Error

	return recs, err
}

func (s *Store) DeleteRecording(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Recording{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteArchivedBefore removes archived recordings older than the
// cutoff. Used by the cleanup task.
func (s *Store) DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("status = ? AND stopped_at < ?", StatusArchived, cutoff).
		Delete(&Recording{})
	return result.RowsAffected, result.Error
}

package recorder

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recording is the archived outcome of a recording session. The live
// event log is deliberately not part of the model: it exists only in
// memory while a session runs, and is discarded at stop. What gets
// persisted is the finished artifact.
// @Description Archived recording with its generated script
type Recording struct {
	ID       uuid.UUID       `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	URL      string          `json:"url" example:"https://example.com"`
	Status   RecordingStatus `json:"status" example:"recording"`
	Template string          `json:"template,omitempty" example:"default"`

	StartedAt time.Time  `json:"started_at" example:"2023-01-01T00:00:00Z"`
	StoppedAt *time.Time `json:"stopped_at,omitempty" example:"2023-01-01T00:05:00Z"`

	// EventCount is the raw log length at stop time, not the compacted
	// statement count.
	EventCount int `json:"event_count" example:"42"`

	// Script is the final rendered document, filled in at stop.
	Script string `json:"script,omitempty"`

	// StorageKey is set once the worker has uploaded the script to
	// artifact storage.
	StorageKey *string `json:"storage_key,omitempty" example:"recordings/550e8400.spec.js"`

	Metadata datatypes.JSON `json:"metadata,omitempty" swaggertype:"object"`

	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
} //@name Recording

func (Recording) TableName() string {
	return "recordings"
}

// BeforeCreate hook for Recording - generates UUID if nil
func (r *Recording) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Recording) IsActive() bool {
	return r.Status == StatusRecording
}

func (r *Recording) Duration() time.Duration {
	if r.StoppedAt == nil {
		return 0
	}
	return r.StoppedAt.Sub(r.StartedAt)
}

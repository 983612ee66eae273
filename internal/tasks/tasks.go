package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeRecordingArchive = "recording:archive"
	TypeRecordingCleanup = "recording:cleanup"
)

// Queue names
const (
	QueueRecordings  = "recordings"
	QueueMaintenance = "maintenance"
)

// RecordingArchivePayload is the payload for archive tasks
type RecordingArchivePayload struct {
	RecordingID uuid.UUID `json:"recording_id"`
}

func (p *RecordingArchivePayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

func (p *RecordingArchivePayload) Unmarshal(data []byte) error {
	return json.Unmarshal(data, p)
}

// NewRecordingArchiveTask creates a task that uploads a finished
// recording's script to artifact storage.
func NewRecordingArchiveTask(payload RecordingArchivePayload) (*asynq.Task, error) {
	data, err := payload.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeRecordingArchive, data, asynq.Queue(QueueRecordings)), nil
}

// RecordingCleanupPayload is the payload for cleanup tasks
type RecordingCleanupPayload struct {
	RetentionDays int `json:"retention_days"`
}

func (p *RecordingCleanupPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

func (p *RecordingCleanupPayload) Unmarshal(data []byte) error {
	return json.Unmarshal(data, p)
}

// NewRecordingCleanupTask creates a task that deletes archived
// recordings older than the retention window.
func NewRecordingCleanupTask(payload RecordingCleanupPayload) (*asynq.Task, error) {
	data, err := payload.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeRecordingCleanup, data, asynq.Queue(QueueMaintenance)), nil
}

// Client wraps an asynq client behind the enqueuer interface the
// recorder takes.
type Client struct {
	client *asynq.Client
}

func NewClient(client *asynq.Client) *Client {
	return &Client{client: client}
}

func (c *Client) EnqueueArchive(ctx context.Context, recordingID uuid.UUID) error {
	task, err := NewRecordingArchiveTask(RecordingArchivePayload{RecordingID: recordingID})
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue archive task: %w", err)
	}
	return nil
}

func (c *Client) EnqueueCleanup(ctx context.Context, retentionDays int) error {
	task, err := NewRecordingCleanupTask(RecordingCleanupPayload{RetentionDays: retentionDays})
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue cleanup task: %w", err)
	}
	return nil
}

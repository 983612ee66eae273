package recorder

// RecordingStatus represents the lifecycle state of a recording
// @Description Lifecycle state of a recording
type RecordingStatus string //@name RecordingStatus

const (
	// StatusRecording: the session is live and the script is being
	// re-rendered on a timer.
	StatusRecording RecordingStatus = "recording"

	// StatusCompleted: the session was stopped and the final script is
	// stored on the row.
	StatusCompleted RecordingStatus = "completed"

	// StatusArchived: the final script was uploaded to artifact
	// storage by the worker.
	StatusArchived RecordingStatus = "archived"

	StatusFailed RecordingStatus = "failed"
)

func (s RecordingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusArchived, StatusFailed:
		return true
	}
	return false
}

package enums

import "fmt"

// QueueStatus tracks an admin's progress on a queued submission.
type QueueStatus string

const (
	QueueStatusPending    QueueStatus = "pending"
	QueueStatusInProgress QueueStatus = "in_progress"
	QueueStatusCompleted  QueueStatus = "completed"
	QueueStatusCancelled  QueueStatus = "cancelled"
)

var validQueueStatuses = []QueueStatus{
	QueueStatusPending,
	QueueStatusInProgress,
	QueueStatusCompleted,
	QueueStatusCancelled,
}

func (q QueueStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known queue status.
func (q QueueStatus) IsValid() bool {
	for _, candidate := range validQueueStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// IsOpen reports whether the entry still shows up in an admin's queue.
func (q QueueStatus) IsOpen() bool {
	return q == QueueStatusPending || q == QueueStatusInProgress
}

// ParseQueueStatus converts raw input into QueueStatus.
func ParseQueueStatus(value string) (QueueStatus, error) {
	for _, candidate := range validQueueStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid queue status %q", value)
}

package cron

import (
	"context"
	"fmt"
	"time"
)

const notificationRetentionJobName = "notification-retention"

type notificationPurger interface {
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationRetentionParams configure the notification retention job.
type NotificationRetentionParams struct {
	Notifications notificationPurger
	RetentionDays int
	Now           func() time.Time
}

type notificationRetentionJob struct {
	notifications notificationPurger
	retention     time.Duration
	now           func() time.Time
}

// NewNotificationRetentionJob deletes read notifications older than the retention window.
func NewNotificationRetentionJob(params NotificationRetentionParams) (Job, error) {
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	if params.RetentionDays <= 0 {
		return nil, fmt.Errorf("retention days must be positive")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &notificationRetentionJob{
		notifications: params.Notifications,
		retention:     time.Duration(params.RetentionDays) * 24 * time.Hour,
		now:           now,
	}, nil
}

func (j *notificationRetentionJob) Name() string { return notificationRetentionJobName }

func (j *notificationRetentionJob) Run(ctx context.Context) (int64, error) {
	cutoff := j.now().UTC().Add(-j.retention)
	deleted, err := j.notifications.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return deleted, nil
}

package cron

import (
	"context"
	"fmt"
	"time"
)

const queueReleaseJobName = "validation-queue-release"

type queueReleaser interface {
	ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type queueReleaseJob struct {
	queue   queueReleaser
	timeout time.Duration
}

// NewQueueReleaseJob returns in-progress queue entries untouched for longer
// than timeout to pending.
func NewQueueReleaseJob(queue queueReleaser, timeout time.Duration) (Job, error) {
	if queue == nil {
		return nil, fmt.Errorf("validation queue service required")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("stale claim timeout must be positive")
	}
	return &queueReleaseJob{queue: queue, timeout: timeout}, nil
}

func (j *queueReleaseJob) Name() string { return queueReleaseJobName }

func (j *queueReleaseJob) Run(ctx context.Context) (int64, error) {
	released, err := j.queue.ReleaseStale(ctx, j.timeout)
	if err != nil {
		return 0, fmt.Errorf("release stale queue entries: %w", err)
	}
	return released, nil
}

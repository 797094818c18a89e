package submissions

import "github.com/angelmondragon/reviewhub-backend/pkg/enums"

var allowedTransitions = map[enums.SubmissionStatus][]enums.SubmissionStatus{
	enums.SubmissionStatusPending: {
		enums.SubmissionStatusSubmitted,
		enums.SubmissionStatusProcessing,
		enums.SubmissionStatusValidated,
		enums.SubmissionStatusRejected,
	},
	enums.SubmissionStatusSubmitted: {
		enums.SubmissionStatusProcessing,
		enums.SubmissionStatusValidated,
		enums.SubmissionStatusRejected,
	},
	enums.SubmissionStatusProcessing: {
		enums.SubmissionStatusValidated,
		enums.SubmissionStatusRejected,
		enums.SubmissionStatusSuccessful,
		enums.SubmissionStatusFailed,
	},
	enums.SubmissionStatusValidated: {
		enums.SubmissionStatusSuccessful,
		enums.SubmissionStatusRejected,
	},
	enums.SubmissionStatusRejected: {
		enums.SubmissionStatusPending,
	},
	enums.SubmissionStatusFailed: {
		enums.SubmissionStatusPending,
	},
	enums.SubmissionStatusSuccessful: {},
}

// CanTransition reports whether a submission may move from one status to
// another. Staying on the same status is always allowed.
func CanTransition(from, to enums.SubmissionStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from status in one move.
func NextStatuses(status enums.SubmissionStatus) []enums.SubmissionStatus {
	next := allowedTransitions[status]
	out := make([]enums.SubmissionStatus, len(next))
	copy(out, next)
	return out
}

type outcomeNotice struct {
	kind  enums.NotificationType
	title string
	body  string
}

// outcomes lists the statuses whose owners are notified.
var outcomes = map[enums.SubmissionStatus]outcomeNotice{
	enums.SubmissionStatusValidated:  {enums.NotificationTypeSuccess, "Submission validated", "Your submission %q passed review."},
	enums.SubmissionStatusSuccessful: {enums.NotificationTypeSuccess, "Submission processed", "Your submission %q was processed successfully."},
	enums.SubmissionStatusRejected:   {enums.NotificationTypeError, "Submission rejected", "Your submission %q was rejected."},
	enums.SubmissionStatusFailed:     {enums.NotificationTypeError, "Submission processing failed", "Processing of your submission %q failed."},
}

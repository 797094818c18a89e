package enums

import (
	"fmt"
	"strings"
)

// SubmissionStatus is the workflow stage of a submission.
type SubmissionStatus string

const (
	SubmissionStatusPending    SubmissionStatus = "pending"
	SubmissionStatusSubmitted  SubmissionStatus = "submitted"
	SubmissionStatusProcessing SubmissionStatus = "processing"
	SubmissionStatusValidated  SubmissionStatus = "validated"
	SubmissionStatusRejected   SubmissionStatus = "rejected"
	SubmissionStatusSuccessful SubmissionStatus = "successful"
	SubmissionStatusFailed     SubmissionStatus = "failed"
)

var validSubmissionStatuses = []SubmissionStatus{
	SubmissionStatusPending,
	SubmissionStatusSubmitted,
	SubmissionStatusProcessing,
	SubmissionStatusValidated,
	SubmissionStatusRejected,
	SubmissionStatusSuccessful,
	SubmissionStatusFailed,
}

// AllSubmissionStatuses returns every status in workflow order.
func AllSubmissionStatuses() []SubmissionStatus {
	out := make([]SubmissionStatus, len(validSubmissionStatuses))
	copy(out, validSubmissionStatuses)
	return out
}

// String implements fmt.Stringer.
func (s SubmissionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known status.
func (s SubmissionStatus) IsValid() bool {
	for _, candidate := range validSubmissionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSubmissionStatus converts raw input into SubmissionStatus.
func ParseSubmissionStatus(value string) (SubmissionStatus, error) {
	normalized := SubmissionStatus(strings.ToLower(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid submission status %q", value)
}

// StatusGroup buckets statuses for the admin review lists.
type StatusGroup string

const (
	StatusGroupPending   StatusGroup = "pending"
	StatusGroupValidated StatusGroup = "validated"
	StatusGroupRejected  StatusGroup = "rejected"
)

// Statuses returns the members of the group.
func (g StatusGroup) Statuses() []SubmissionStatus {
	switch g {
	case StatusGroupPending:
		return []SubmissionStatus{SubmissionStatusPending, SubmissionStatusProcessing, SubmissionStatusSubmitted}
	case StatusGroupValidated:
		return []SubmissionStatus{SubmissionStatusValidated, SubmissionStatusSuccessful}
	case StatusGroupRejected:
		return []SubmissionStatus{SubmissionStatusRejected, SubmissionStatusFailed}
	default:
		return nil
	}
}

// OldestFirst reports whether the group is listed in ascending creation order.
func (g StatusGroup) OldestFirst() bool {
	return g == StatusGroupPending
}

// ParseStatusGroup converts raw input into StatusGroup.
func ParseStatusGroup(value string) (StatusGroup, error) {
	switch g := StatusGroup(strings.ToLower(strings.TrimSpace(value))); g {
	case StatusGroupPending, StatusGroupValidated, StatusGroupRejected:
		return g, nil
	}
	return "", fmt.Errorf("invalid status group %q", value)
}

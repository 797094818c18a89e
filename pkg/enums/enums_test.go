package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileType(t *testing.T) {
	ft, err := ParseFileType(" Image ")
	require.NoError(t, err)
	assert.Equal(t, FileTypeImage, ft)

	_, err = ParseFileType("spreadsheet")
	assert.Error(t, err)
}

func TestStatusGroups(t *testing.T) {
	assert.ElementsMatch(t,
		[]SubmissionStatus{SubmissionStatusPending, SubmissionStatusProcessing, SubmissionStatusSubmitted},
		StatusGroupPending.Statuses())
	assert.ElementsMatch(t,
		[]SubmissionStatus{SubmissionStatusValidated, SubmissionStatusSuccessful},
		StatusGroupValidated.Statuses())
	assert.ElementsMatch(t,
		[]SubmissionStatus{SubmissionStatusRejected, SubmissionStatusFailed},
		StatusGroupRejected.Statuses())
	assert.True(t, StatusGroupPending.OldestFirst())
	assert.False(t, StatusGroupRejected.OldestFirst())

	_, err := ParseStatusGroup("archived")
	assert.Error(t, err)
}

func TestEveryStatusBelongsToOneGroup(t *testing.T) {
	seen := map[SubmissionStatus]int{}
	for _, g := range []StatusGroup{StatusGroupPending, StatusGroupValidated, StatusGroupRejected} {
		for _, s := range g.Statuses() {
			seen[s]++
		}
	}
	for _, s := range AllSubmissionStatuses() {
		assert.Equalf(t, 1, seen[s], "status %s", s)
	}
}

func TestQueueStatusOpen(t *testing.T) {
	assert.True(t, QueueStatusPending.IsOpen())
	assert.True(t, QueueStatusInProgress.IsOpen())
	assert.False(t, QueueStatusCompleted.IsOpen())
	assert.False(t, QueueStatusCancelled.IsOpen())

	_, err := ParseQueueStatus("done")
	assert.Error(t, err)
}

func TestAdminEnums(t *testing.T) {
	role, err := ParseAdminRole("validator_admin")
	require.NoError(t, err)
	assert.Equal(t, AdminRoleValidatorAdmin, role)

	_, err = ParseAdminAccountStatus("deleted")
	assert.Error(t, err)

	_, err = ParseAuthorType("bot")
	assert.Error(t, err)
}

package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTeamMembers_Contains(t *testing.T) {
	linked := uuid.New()
	members := TeamMembers{
		{Name: "Unlinked", Email: "a@uni.edu", Role: "Lead"},
		{Name: "Linked", Email: "b@uni.edu", Role: CollaboratorRole, UserID: &linked},
	}

	assert.True(t, members.Contains(linked))
	assert.False(t, members.Contains(uuid.New()))
	assert.False(t, TeamMembers(nil).Contains(linked))
}

func TestTeamMembers_RegisteredUserIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	nilID := uuid.Nil
	members := TeamMembers{
		{Name: "A", UserID: &a},
		{Name: "No account"},
		{Name: "Zero", UserID: &nilID},
		{Name: "B", UserID: &b},
		{Name: "A again", UserID: &a},
	}

	assert.Equal(t, []uuid.UUID{a, b}, members.RegisteredUserIDs())
}

func TestProject_AcceptsCollaborators(t *testing.T) {
	tests := []struct {
		status   ProjectStatus
		expected bool
	}{
		{ProjectStatusInProgress, true},
		{ProjectStatusCompleted, false},
		{ProjectStatusArchived, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			p := &Project{Status: tt.status}
			assert.Equal(t, tt.expected, p.AcceptsCollaborators())
		})
	}
}

func TestCollaborationStatus(t *testing.T) {
	assert.False(t, CollaborationStatusPending.IsTerminal())
	assert.True(t, CollaborationStatusAccepted.IsTerminal())
	assert.True(t, CollaborationStatusRejected.IsTerminal())
}

func TestBadgeType_IsValid(t *testing.T) {
	for _, bt := range AllBadgeTypes {
		assert.True(t, bt.IsValid(), bt)
	}
	assert.False(t, BadgeType("night-owl").IsValid())
}

func TestRosterProbe(t *testing.T) {
	id := uuid.MustParse("6f1c2a9e-0b7d-4c1e-9a55-3d2f8e4b7c10")

	assert.JSONEq(t, `[{"userId":"6f1c2a9e-0b7d-4c1e-9a55-3d2f8e4b7c10"}]`, RosterProbe(id))
}

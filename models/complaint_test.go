package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplaintStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid(), "status %q", s)
	}
	assert.False(t, ComplaintStatus("escalated").IsValid())
	assert.False(t, ComplaintStatus("").IsValid())
}

func TestComplaintStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusClosed.IsTerminal())
	for _, s := range []ComplaintStatus{StatusPending, StatusForwarded, StatusReplied, StatusReverted, StatusAwaitingApproval} {
		assert.False(t, s.IsTerminal(), "status %q", s)
	}
}

func TestParsePriority_DefaultsToNormal(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParsePriority("high"))
	assert.Equal(t, PriorityCritical, ParsePriority("critical"))
	assert.Equal(t, PriorityNormal, ParsePriority("urgent"))
	assert.Equal(t, PriorityNormal, ParsePriority(""))
}

func TestDisplayPriority_SuppressedWhenClosed(t *testing.T) {
	assert.Equal(t, "", DisplayPriority(StatusClosed, PriorityCritical))
	assert.Equal(t, "critical", DisplayPriority(StatusPending, PriorityCritical))
	assert.Equal(t, "normal", DisplayPriority(StatusAwaitingApproval, PriorityNormal))
}

func TestIsKnownDepartment(t *testing.T) {
	for _, d := range Departments {
		assert.True(t, IsKnownDepartment(d))
	}
	assert.False(t, IsKnownDepartment("CATERING"))
	assert.False(t, IsKnownDepartment("commercial"))
}

func TestRole_IsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleController.IsStaff())
	assert.True(t, RoleViewer.IsStaff())
	assert.False(t, RoleCustomer.IsStaff())
}

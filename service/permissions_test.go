package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"railcare/models"
)

func TestCan_CapabilityMatrix(t *testing.T) {
	customer := &models.Actor{Role: models.RoleCustomer, CustomerID: 1}
	commercialCtrl := &models.Actor{Role: models.RoleController, Department: models.DeptCommercial}
	operatingCtrl := &models.Actor{Role: models.RoleController, Department: models.DeptOperating}
	commercialAdmin := &models.Actor{Role: models.RoleAdmin, Department: models.DeptCommercial}
	viewer := &models.Actor{Role: models.RoleViewer, Department: models.DeptCommercial}

	tests := []struct {
		name   string
		actor  *models.Actor
		action models.LifecycleAction
		want   bool
	}{
		{"customer submits", customer, models.ActionSubmit, true},
		{"customer gives feedback", customer, models.ActionFeedback, true},
		{"customer answers revert", customer, models.ActionAdditionalInfo, true},
		{"customer cannot forward", customer, models.ActionForward, false},
		{"customer cannot approve", customer, models.ActionApprove, false},

		{"controller forwards", operatingCtrl, models.ActionForward, true},
		{"controller closes", operatingCtrl, models.ActionClose, true},
		{"controller replies", operatingCtrl, models.ActionReply, true},
		{"controller cannot submit", operatingCtrl, models.ActionSubmit, false},

		{"commercial controller reverts", commercialCtrl, models.ActionRevert, true},
		{"commercial controller approves", commercialCtrl, models.ActionApprove, true},
		{"commercial admin approves", commercialAdmin, models.ActionApprove, true},
		{"operating controller cannot revert", operatingCtrl, models.ActionRevert, false},
		{"operating controller cannot approve", operatingCtrl, models.ActionApprove, false},

		{"viewer cannot forward", viewer, models.ActionForward, false},
		{"viewer cannot revert even in commercial", viewer, models.ActionRevert, false},

		{"nil actor can do nothing", nil, models.ActionSubmit, false},
		{"unknown action denied", commercialAdmin, models.LifecycleAction("archive"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.actor, tt.action))
		})
	}
}

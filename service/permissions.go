package service

import "railcare/models"

// Can is the capability predicate for lifecycle actions. Department- and
// role-gated checks live here instead of being scattered through handlers.
//
// Revert and approve are gated on department == COMMERCIAL, not on role:
// any commercial staff member may exercise them, and no one else can.
func Can(actor *models.Actor, action models.LifecycleAction) bool {
	if actor == nil {
		return false
	}

	switch action {
	case models.ActionSubmit, models.ActionAdditionalInfo, models.ActionFeedback:
		return actor.Role == models.RoleCustomer

	case models.ActionForward, models.ActionClose, models.ActionReply:
		return actor.Role == models.RoleAdmin || actor.Role == models.RoleController

	case models.ActionRevert, models.ActionApprove:
		if actor.Role != models.RoleAdmin && actor.Role != models.RoleController {
			return false
		}
		return actor.Department == models.DeptCommercial

	default:
		return false
	}
}

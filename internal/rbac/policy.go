package rbac

import "smg-portal/internal/domain"

const (
	ResourceUser         = "user"
	ResourceRequest      = "request"
	ResourceNotification = "notification"
	ResourceAttendance   = "attendance"
	ResourceEnrollment   = "enrollment"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionApprove = "approve"
	ActionUpdate  = "update"
	ActionManage  = "manage"
)

// roleParents lists, per role, the roles whose permissions it inherits.
var roleParents = map[string][]string{
	domain.RoleAdmin:      {domain.RoleEmployee},
	domain.RoleSuperAdmin: {domain.RoleAdmin},
}

var rolePermissions = map[string][][2]string{
	domain.RoleEmployee: {
		{ResourceRequest, ActionCreate},
		{ResourceRequest, ActionRead},
		{ResourceNotification, ActionRead},
		{ResourceAttendance, ActionRead},
	},
	domain.RoleAdmin: {
		{ResourceRequest, ActionReadAll},
		{ResourceRequest, ActionApprove},
		{ResourceEnrollment, ActionUpdate},
	},
	domain.RoleSuperAdmin: {
		{ResourceUser, ActionManage},
	},
}

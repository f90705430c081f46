package user

type Permission string

const (
	// Leave Management
	PermissionLeaveViewOwn  Permission = "leave.view_own"
	PermissionLeaveCreate   Permission = "leave.create"
	PermissionLeaveViewAll  Permission = "leave.view_all"
	PermissionLeaveApprove  Permission = "leave.approve"
	PermissionLeaveFinalize Permission = "leave.finalize"

	// Administration
	PermissionLeaveManageTypes Permission = "leave.manage_types"
	PermissionHolidayManage    Permission = "holiday.manage"
	PermissionBalanceAdjust    Permission = "balance.adjust"
)

// RolePermissions maps roles to their permissions. Managers do not carry
// view-all: their visibility into other employees' requests is scoped to
// the departments they manage.
var RolePermissions = map[Role][]Permission{
	RoleHR: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionLeaveFinalize,
		PermissionLeaveManageTypes,
		PermissionHolidayManage,
		PermissionBalanceAdjust,
	},
	RoleManager: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveApprove,
	},
	RoleEmployee: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

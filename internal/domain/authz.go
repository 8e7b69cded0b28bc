package domain

// Action is a user-visible operation gated by role. Every gate in the
// client queries Can with one of these; role checks are never derived
// inline elsewhere.
type Action string

const (
	ActionViewDashboard     Action = "view_dashboard"
	ActionViewProjectDetail Action = "view_project_detail"
	ActionCreateProject     Action = "create_project"
	ActionCreateTask        Action = "create_task"
	ActionListUsers         Action = "list_users"
	ActionCreateUser        Action = "create_user"
	ActionAssignTask        Action = "assign_task"
)

// permissions is the full role/action table. Absent entries deny.
var permissions = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionViewDashboard:     true,
		ActionViewProjectDetail: true,
		ActionCreateProject:     true,
		ActionCreateTask:        true,
		ActionListUsers:         true,
		ActionCreateUser:        true,
		ActionAssignTask:        true,
	},
	RoleManager: {
		ActionViewDashboard:     true,
		ActionViewProjectDetail: true,
		ActionCreateTask:        true,
		ActionAssignTask:        true,
	},
	RoleUser: {
		ActionViewDashboard:     true,
		ActionViewProjectDetail: true,
	},
}

// Can reports whether the given role may perform the given action. Pure
// function of its inputs; unknown roles and actions deny.
func Can(role Role, action Action) bool {
	return permissions[role][action]
}

// AssignableRoles returns the roles a given role may assign tasks to.
// Admins assign to managers and regular users, managers only to regular
// users.
func AssignableRoles(role Role) []Role {
	switch role {
	case RoleAdmin:
		return []Role{RoleManager, RoleUser}
	case RoleManager:
		return []Role{RoleUser}
	}
	return nil
}

// CanAssignTo reports whether assigner may assign a task to a user
// holding assignee.
func CanAssignTo(assigner, assignee Role) bool {
	for _, r := range AssignableRoles(assigner) {
		if r == assignee {
			return true
		}
	}
	return false
}

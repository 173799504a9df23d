package workforce

// Action is something a role may be allowed to do
type Action string

const (
	ActionRead              Action = "read"
	ActionManageEmployees   Action = "employees:write"
	ActionManageProjects    Action = "projects:write"
	ActionManageTasks       Action = "tasks:write"
	ActionManageResources   Action = "resources:write"
	ActionManageAssignments Action = "assignments:write"
	ActionManageMaterials   Action = "materials:write"
	ActionRecordStock       Action = "stock:write"
	ActionSeed              Action = "dev:seed"
)

var rolePermissions = map[Role][]Action{
	RoleViewer: {
		ActionRead,
	},
	RoleEngineer: {
		ActionRead, ActionManageTasks, ActionManageAssignments, ActionRecordStock,
	},
	RolePM: {
		ActionRead, ActionManageTasks, ActionManageAssignments, ActionRecordStock,
		ActionManageProjects, ActionManageResources, ActionManageMaterials,
	},
}

// Can reports whether the role is allowed to perform the action
func (r Role) Can(a Action) bool {
	if r == RoleAdmin {
		return true
	}
	for _, allowed := range rolePermissions[r] {
		if allowed == a {
			return true
		}
	}
	return false
}

// AllActions lists every action in a stable order
var AllActions = []Action{
	ActionRead, ActionManageEmployees, ActionManageProjects, ActionManageTasks,
	ActionManageResources, ActionManageAssignments, ActionManageMaterials,
	ActionRecordStock, ActionSeed,
}

// Permissions returns the actions the role may perform
func (r Role) Permissions() []Action {
	out := make([]Action, 0, len(AllActions))
	for _, a := range AllActions {
		if r.Can(a) {
			out = append(out, a)
		}
	}
	return out
}

package domain

// Role はユーザーのロールを表す。
type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleCompanyAdmin   Role = "company_admin"
	RoleProjectManager Role = "project_manager"
	RoleSiteSupervisor Role = "site_supervisor"
	RoleForeman        Role = "foreman"
	RoleWorker         Role = "worker"
	RoleSubcontractor  Role = "subcontractor"
)

// AllRoles は定義済みの全ロール。
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleCompanyAdmin,
	RoleProjectManager,
	RoleSiteSupervisor,
	RoleForeman,
	RoleWorker,
	RoleSubcontractor,
}

// ManagerRoles は現場管理系エンドポイントの許可リスト。
var ManagerRoles = []Role{
	RoleSuperAdmin,
	RoleCompanyAdmin,
	RoleProjectManager,
	RoleSiteSupervisor,
	RoleForeman,
}

// AdminRoles は会社管理系エンドポイントの許可リスト。
var AdminRoles = []Role{
	RoleSuperAdmin,
	RoleCompanyAdmin,
}

// Valid はロールが定義済みか判定する。
func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Principal は認証済みリクエストの主体を表す。
type Principal struct {
	UserID    string
	CompanyID string
	Role      Role
}

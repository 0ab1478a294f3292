package scope

import "strings"

// Role 为封闭枚举；入口处统一归一化，未知角色按最低权限处理。
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
	RoleSales   Role = "SALES"
	RoleClient  Role = "CLIENT"
	RoleUnknown Role = ""
)

func ParseRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMIN":
		return RoleAdmin
	case "MANAGER":
		return RoleManager
	case "STAFF":
		return RoleStaff
	case "SALES":
		return RoleSales
	case "CLIENT":
		return RoleClient
	}
	return RoleUnknown
}

// 虚拟网点：不落库，只参与权限判定
const (
	LocationAll    = "all"
	LocationOnline = "online"
	LocationHome   = "home"
)

// Principal 由会话层解析后显式传入，scope 内部不做任何环境查找。
type Principal struct {
	ID        string
	Role      Role
	Locations []string
	Email     string
}

func (p *Principal) hasLocation(id string) bool {
	for _, l := range p.Locations {
		if l == id {
			return true
		}
	}
	return false
}

func (p *Principal) hasAll() bool { return p.hasLocation(LocationAll) }

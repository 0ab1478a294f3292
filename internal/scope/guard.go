package scope

import "strings"

// Guard 是导航守卫的纯决策部分：命中目标角色且当前路径不在
// 白名单（含子路径）内时，给出一次性跳转目标。
// 会话未解析（principal 为 nil）时不做任何决策。
type Guard struct {
	Role     Role
	Allowed  []string
	Fallback string
}

// NewSalesGuard 默认守卫：SALES 只允许停留在收银与库存页。
func NewSalesGuard() Guard {
	allowed := []string{"/dashboard/pos", "/dashboard/inventory"}
	return Guard{Role: RoleSales, Allowed: allowed, Fallback: allowed[0]}
}

// Evaluate 返回 (跳转目标, 是否需要跳转)。
func (g Guard) Evaluate(p *Principal, path string) (string, bool) {
	if p == nil || p.Role != g.Role {
		return "", false
	}
	for _, a := range g.Allowed {
		if pathWithin(path, a) {
			return "", false
		}
	}
	fb := g.Fallback
	if fb == "" && len(g.Allowed) > 0 {
		fb = g.Allowed[0]
	}
	return fb, true
}

// pathWithin: 相等，或以 allowed + "/" 为前缀的子路径
func pathWithin(path, allowed string) bool {
	if path == allowed {
		return true
	}
	return strings.HasPrefix(path, allowed+"/")
}

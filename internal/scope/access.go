package scope

// HasLocationAccess 判定 principal 能否看到某个网点。
// 未登录走公开只读兜底；虚拟网点的规则优先于 "all" 哨兵。
func HasLocationAccess(p *Principal, locationID string) bool {
	if p == nil {
		return true
	}
	if p.Role == RoleAdmin {
		return true
	}
	switch locationID {
	case LocationOnline:
		return p.Role == RoleSales
	case LocationHome:
		return false // 仅 ADMIN，上面已放行
	}
	if p.hasAll() {
		return true
	}
	return p.hasLocation(locationID)
}

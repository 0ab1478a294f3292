package scope

import "salon-suite/internal/domain"

// 列表过滤均为单趟内存扫描，数据已由各自的列表接口取回。

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// FilterLocations 按网点访问权过滤。SALES 比普通访问权更窄：
// 即便持有 "all"，列表里也只留线上店。
func FilterLocations(p *Principal, items []domain.Location) []domain.Location {
	if p != nil && p.Role == RoleSales {
		return keep(items, func(l domain.Location) bool { return l.ID == LocationOnline })
	}
	return keep(items, func(l domain.Location) bool { return HasLocationAccess(p, l.ID) })
}

func FilterAppointments(p *Principal, items []domain.Appointment) []domain.Appointment {
	if p != nil && p.Role == RoleSales {
		return keep(items, func(a domain.Appointment) bool { return a.LocationID == LocationOnline })
	}
	return keep(items, func(a domain.Appointment) bool { return HasLocationAccess(p, a.LocationID) })
}

// FilterStaff 按网点集合交集过滤；这里刻意不套用虚拟网点规则，
// 与其它过滤器的不对称行为由测试钉死。
func FilterStaff(p *Principal, items []domain.Staff) []domain.Staff {
	if p == nil || p.Role == RoleAdmin || p.hasAll() {
		return items
	}
	return keep(items, func(s domain.Staff) bool {
		for _, loc := range s.Locations {
			if p.hasLocation(loc) {
				return true
			}
		}
		return false
	})
}

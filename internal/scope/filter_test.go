package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-suite/internal/domain"
)

func locs(ids ...string) []domain.Location {
	out := make([]domain.Location, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Location{ID: id, Name: id})
	}
	return out
}

func locIDs(items []domain.Location) []string {
	out := make([]string, 0, len(items))
	for _, l := range items {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterLocations(t *testing.T) {
	all := locs("loc-1", "loc-2", LocationOnline, LocationHome)

	t.Run("匿名公开只读全量", func(t *testing.T) {
		got := FilterLocations(nil, all)
		assert.Equal(t, []string{"loc-1", "loc-2", LocationOnline, LocationHome}, locIDs(got))
	})

	t.Run("admin 全量", func(t *testing.T) {
		got := FilterLocations(&Principal{Role: RoleAdmin}, all)
		assert.Len(t, got, 4)
	})

	t.Run("sales 只剩线上店", func(t *testing.T) {
		got := FilterLocations(&Principal{Role: RoleSales, Locations: []string{LocationAll}}, all)
		require.Len(t, got, 1)
		assert.Equal(t, LocationOnline, got[0].ID)
	})

	t.Run("staff 按成员关系", func(t *testing.T) {
		got := FilterLocations(&Principal{Role: RoleStaff, Locations: []string{"loc-2"}}, all)
		assert.Equal(t, []string{"loc-2"}, locIDs(got))
	})

	t.Run("manager 持 all 仍看不到虚拟网点", func(t *testing.T) {
		got := FilterLocations(&Principal{Role: RoleManager, Locations: []string{LocationAll}}, all)
		assert.Equal(t, []string{"loc-1", "loc-2"}, locIDs(got))
	})
}

func TestFilterAppointments(t *testing.T) {
	items := []domain.Appointment{
		{ID: "a1", LocationID: "loc-1"},
		{ID: "a2", LocationID: "loc-2"},
		{ID: "a3", LocationID: LocationOnline},
	}

	t.Run("sales 只剩线上预约", func(t *testing.T) {
		got := FilterAppointments(&Principal{Role: RoleSales}, items)
		require.Len(t, got, 1)
		assert.Equal(t, "a3", got[0].ID)
	})

	t.Run("staff 按网点", func(t *testing.T) {
		got := FilterAppointments(&Principal{Role: RoleStaff, Locations: []string{"loc-1"}}, items)
		require.Len(t, got, 1)
		assert.Equal(t, "a1", got[0].ID)
	})

	t.Run("空输入得空切片", func(t *testing.T) {
		got := FilterAppointments(&Principal{Role: RoleStaff}, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFilterStaff(t *testing.T) {
	items := []domain.Staff{
		{ID: "s1", Locations: []string{"loc-1"}},
		{ID: "s2", Locations: []string{"loc-2", LocationOnline}},
		{ID: "s3", Locations: []string{LocationOnline}},
	}

	t.Run("admin 全量", func(t *testing.T) {
		got := FilterStaff(&Principal{Role: RoleAdmin}, items)
		assert.Len(t, got, 3)
	})

	t.Run("all 哨兵全量", func(t *testing.T) {
		got := FilterStaff(&Principal{Role: RoleManager, Locations: []string{LocationAll}}, items)
		assert.Len(t, got, 3)
	})

	t.Run("交集命中", func(t *testing.T) {
		got := FilterStaff(&Principal{Role: RoleManager, Locations: []string{"loc-2"}}, items)
		require.Len(t, got, 1)
		assert.Equal(t, "s2", got[0].ID)
	})

	// 员工过滤对虚拟网点不做角色特判：sales 的网点集合若不含
	// "online"，即便员工挂在线上店也不可见。与网点/预约过滤的
	// 不对称行为在此钉死。
	t.Run("sales 无 online 成员则看不到线上员工", func(t *testing.T) {
		got := FilterStaff(&Principal{Role: RoleSales, Locations: []string{"loc-1"}}, items)
		require.Len(t, got, 1)
		assert.Equal(t, "s1", got[0].ID)
	})

	t.Run("sales 显式持有 online 才可见", func(t *testing.T) {
		got := FilterStaff(&Principal{Role: RoleSales, Locations: []string{LocationOnline}}, items)
		assert.Equal(t, 2, len(got))
	})
}

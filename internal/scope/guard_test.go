package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalesGuard(t *testing.T) {
	g := NewSalesGuard()
	sales := &Principal{ID: "u1", Role: RoleSales}

	tests := []struct {
		name     string
		p        *Principal
		path     string
		redirect string
		want     bool
	}{
		{"未解析会话不跳转", nil, "/dashboard/reports", "", false},
		{"其它角色不受限", &Principal{Role: RoleManager}, "/dashboard/reports", "", false},
		{"sales 白名单页放行", sales, "/dashboard/pos", "", false},
		{"sales 白名单子路径放行", sales, "/dashboard/pos/history", "", false},
		{"sales 库存页放行", sales, "/dashboard/inventory", "", false},
		{"sales 越界跳回收银", sales, "/dashboard/reports", "/dashboard/pos", true},
		{"前缀相似不算子路径", sales, "/dashboard/positions", "/dashboard/pos", true},
		{"根路径也跳", sales, "/", "/dashboard/pos", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redirect, ok := g.Evaluate(tt.p, tt.path)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.redirect, redirect)
		})
	}
}

func TestGuardFallbackDefaults(t *testing.T) {
	g := Guard{Role: RoleSales, Allowed: []string{"/a"}}
	redirect, ok := g.Evaluate(&Principal{Role: RoleSales}, "/b")
	assert.True(t, ok)
	assert.Equal(t, "/a", redirect)
}

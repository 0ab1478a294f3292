package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvatar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maria Garcia", "MG"},
		{"maria garcia lopez", "MG"},
		{"Cher", "CH"},
		{"x", "X"},
		{"  Maria   Garcia  ", "MG"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Avatar(tt.in), "Avatar(%q)", tt.in)
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) time.Time { return now.Add(-time.Duration(d) * 24 * time.Hour) }
	visit := func(d int) *time.Time { t := daysAgo(d); return &t }

	tests := []struct {
		name      string
		createdAt time.Time
		tier      string
		lastVisit *time.Time
		want      string
	}{
		{"注册未满 30 天", daysAgo(5), "Bronze", visit(1), SegmentNew},
		{"注册刚好 30 天不再是新客", daysAgo(30), "Bronze", visit(1), SegmentRegular},
		{"gold 即 VIP", daysAgo(200), "Gold", visit(120), SegmentVIP},
		{"platinum 即 VIP", daysAgo(200), "platinum", nil, SegmentVIP},
		{"新客优先于 VIP", daysAgo(5), "Gold", nil, SegmentNew},
		{"超 90 天未到店", daysAgo(200), "Silver", visit(120), SegmentAtRisk},
		{"从未到店", daysAgo(200), "Bronze", nil, SegmentAtRisk},
		{"常客", daysAgo(200), "Silver", visit(10), SegmentRegular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(now, tt.createdAt, tt.tier, tt.lastVisit))
		})
	}
}

func TestParsePreferences(t *testing.T) {
	t.Run("空串回退默认", func(t *testing.T) {
		p := ParsePreferences("", nil)
		assert.NotNil(t, p.PreferredServices)
		assert.Empty(t, p.PreferredServices)
	})

	t.Run("坏 JSON 回退默认", func(t *testing.T) {
		p := ParsePreferences("{not json", nil)
		assert.Equal(t, DefaultPreferences(), p)
	})

	t.Run("合法数据透传", func(t *testing.T) {
		p := ParsePreferences(`{"preferredStylist":"ana","preferredServices":["cut"],"marketingOptIn":true}`, nil)
		assert.Equal(t, "ana", p.PreferredStylist)
		assert.Equal(t, []string{"cut"}, p.PreferredServices)
		assert.True(t, p.MarketingOptIn)
	})

	t.Run("缺服务列表补空切片", func(t *testing.T) {
		p := ParsePreferences(`{"preferredStylist":"ana"}`, nil)
		assert.NotNil(t, p.PreferredServices)
	})
}

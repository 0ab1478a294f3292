package client

import (
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"salon-suite/internal/domain"
)

// 分群阈值
const (
	newClientWindow = 30 * 24 * time.Hour
	atRiskWindow    = 90 * 24 * time.Hour
)

const (
	SegmentNew     = "New"
	SegmentVIP     = "VIP"
	SegmentRegular = "Regular"
	SegmentAtRisk  = "At Risk"
)

// Avatar 取姓名前两个词的首字母；单词名取前两个字符。大写输出。
func Avatar(name string) string {
	tokens := strings.Fields(name)
	switch {
	case len(tokens) >= 2:
		return strings.ToUpper(firstRune(tokens[0]) + firstRune(tokens[1]))
	case len(tokens) == 1:
		r := []rune(tokens[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	}
	return ""
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// Classify 按注册时长、会员等级、末次到店间隔给出分群，依次判定：
// New → VIP → At Risk → Regular。分群只派生，不持久化。
func Classify(now, createdAt time.Time, tier string, lastVisit *time.Time) string {
	if now.Sub(createdAt) < newClientWindow {
		return SegmentNew
	}
	switch strings.ToLower(tier) {
	case "gold", "platinum":
		return SegmentVIP
	}
	if lastVisit == nil || now.Sub(*lastVisit) > atRiskWindow {
		return SegmentAtRisk
	}
	return SegmentRegular
}

// DefaultPreferences 宽松读取的回退形状
func DefaultPreferences() domain.Preferences {
	return domain.Preferences{PreferredServices: []string{}}
}

// ParsePreferences 读取序列化偏好；坏数据回退默认并记日志（非错误）。
func ParsePreferences(raw string, log *zap.Logger) domain.Preferences {
	if strings.TrimSpace(raw) == "" {
		return DefaultPreferences()
	}
	var p domain.Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		if log != nil {
			log.Warn("malformed client preferences, using defaults", zap.Error(err))
		}
		return DefaultPreferences()
	}
	if p.PreferredServices == nil {
		p.PreferredServices = []string{}
	}
	return p
}

// Compose 回填派生字段（avatar / segment）
func Compose(c *domain.Client, now time.Time) {
	c.Avatar = Avatar(c.Name)
	c.Segment = Classify(now, c.CreatedAt, c.LoyaltyTier, c.LastVisit)
}

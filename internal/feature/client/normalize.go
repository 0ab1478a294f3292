package client

import "strings"

// NormalizePhone 取号码的纯数字投影，作为唯一的电话比较键。
// 空输入返回空串；对自身幂等。
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName 去首尾空白并折叠大小写，作为唯一的姓名比较键。
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

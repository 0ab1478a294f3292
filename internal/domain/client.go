package domain

import (
	"context"
	"time"
)

// 客户画像（对外视图）。Avatar/Segment/TotalSpent 为派生字段，不落库。
type Client struct {
	ID                  string       `json:"id"`
	UserID              string       `json:"userId"`
	Name                string       `json:"name"`
	Phone               string       `json:"phone,omitempty"`
	Email               string       `json:"email,omitempty"`
	Address             string       `json:"address,omitempty"`
	City                string       `json:"city,omitempty"`
	DateOfBirth         *time.Time   `json:"dateOfBirth,omitempty"`
	Preferences         Preferences  `json:"preferences"`
	Notes               string       `json:"notes,omitempty"`
	PreferredLocationID string       `json:"preferredLocationId,omitempty"`
	Source              string       `json:"source,omitempty"`
	AutoRegistered      bool         `json:"autoRegistered"`
	LoyaltyTier         string       `json:"loyaltyTier,omitempty"`
	LoyaltyPoints       int          `json:"loyaltyPoints"`
	TotalSpent          float64      `json:"totalSpent"`
	LastVisit           *time.Time   `json:"lastVisit,omitempty"`
	Avatar              string       `json:"avatar"`
	Segment             string       `json:"segment,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// 客户偏好（序列化存储，读取失败回退默认值）
type Preferences struct {
	PreferredStylist  string   `json:"preferredStylist"`
	PreferredServices []string `json:"preferredServices"`
	AllergyNotes      string   `json:"allergyNotes"`
	MarketingOptIn    bool     `json:"marketingOptIn"`
}

// 查重结果：matchType 取 "phone" / "name"
type DuplicateMatch struct {
	MatchType string `json:"matchType"`
	Client    Client `json:"client"`
}

// 新建客户时一次性落库的三条记录（同一事务内）
type NewClientBundle struct {
	Account Account
	Client  Client
	Loyalty Loyalty
}

type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

type Loyalty struct {
	ID       string
	ClientID string
	Points   int
	Tier     string
	Active   bool
}

type ClientRepository interface {
	// 查重扫描用：按插入自然序返回全量客户（含账号邮箱），不排序
	ListWithAccounts(ctx context.Context) ([]Client, error)
	// 列表视图：含会员等级、已完成消费合计、末次到店；locationID 过滤偏好门店
	ListViews(ctx context.Context, locationID string) ([]Client, error)
	CreateBundle(ctx context.Context, b *NewClientBundle) error
	CountActive(ctx context.Context) (int64, error)
}

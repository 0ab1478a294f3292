package client

import (
	"time"

	"gorm.io/gorm"

	"salon-suite/internal/feature/account"
)

type ClientModel struct {
	ID                  string     `gorm:"primaryKey;type:varchar(32)"`
	UserID              string     `gorm:"size:32;index;not null"`
	Name                string     `gorm:"size:100;not null"`
	Phone               string     `gorm:"size:32"`
	Address             string     `gorm:"size:255"`
	City                string     `gorm:"size:64"`
	DateOfBirth         *time.Time
	Preferences         string `gorm:"type:text"` // 序列化 JSON，宽松读取
	Notes               string `gorm:"type:text"`
	PreferredLocationID string `gorm:"size:32"`
	Source              string `gorm:"size:32"`
	AutoRegistered      bool

	Account account.AccountModel `gorm:"foreignKey:UserID;references:ID"`
	Loyalty *LoyaltyModel        `gorm:"foreignKey:ClientID;references:ID"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ClientModel) TableName() string { return "clients" }

// 会员档案：建客时初始化为 0 分 / Bronze / 生效
type LoyaltyModel struct {
	ID       string `gorm:"primaryKey;type:varchar(32)"`
	ClientID string `gorm:"uniqueIndex;size:32;not null"`
	Points   int    `gorm:"not null;default:0"`
	Tier     string `gorm:"size:16;not null;default:Bronze"`
	Active   bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (LoyaltyModel) TableName() string { return "loyalty_accounts" }

type TransactionModel struct {
	ID         string  `gorm:"primaryKey;type:varchar(32)"`
	ClientID   string  `gorm:"size:32;index;not null"`
	LocationID string  `gorm:"size:32;index"`
	Amount     float64 `gorm:"not null"`
	Status     string  `gorm:"size:16;not null;default:pending"` // completed / pending / voided
	Kind       string  `gorm:"size:32"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (TransactionModel) TableName() string { return "transactions" }

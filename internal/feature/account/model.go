package account

import (
	"time"

	"gorm.io/gorm"
)

// 账号表：客户、员工、销售、管理员共用，按 role 区分
type AccountModel struct {
	ID           string `gorm:"primaryKey;type:varchar(32)"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Name         string `gorm:"size:64;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	Role         string `gorm:"size:16;not null;default:client"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (AccountModel) TableName() string { return "users" }

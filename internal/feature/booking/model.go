package booking

import (
	"time"

	"gorm.io/gorm"
)

// 预约单；UserID 为发起预约的账号（ez.Crud 的归属键）
type AppointmentModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	UserID     string    `gorm:"size:32;index" json:"userId"`
	ClientID   string    `gorm:"size:32;index" json:"clientId"`
	StaffID    string    `gorm:"size:32;index" json:"staffId"`
	LocationID string    `gorm:"size:32;index" json:"locationId"`
	Service    string    `gorm:"size:100" json:"service"`
	Status     string    `gorm:"size:16;default:booked" json:"status"` // booked / done / cancelled
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AppointmentModel) TableName() string { return "appointments" }

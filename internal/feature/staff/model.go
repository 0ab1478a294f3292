package staff

import (
	"time"

	"gorm.io/gorm"
)

type StaffModel struct {
	ID       string `gorm:"primaryKey;type:varchar(32)"`
	UserID   string `gorm:"size:32;index;not null"`
	Name     string `gorm:"size:100;not null"`
	JobTitle string `gorm:"size:64"`
	Active   bool   `gorm:"not null;default:true"`

	Assignments []StaffLocationModel `gorm:"foreignKey:StaffID;references:ID"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (StaffModel) TableName() string { return "staff" }

// 员工-网点指派（多对多联结）
type StaffLocationModel struct {
	ID         string `gorm:"primaryKey;type:varchar(32)"`
	StaffID    string `gorm:"size:32;index;not null"`
	LocationID string `gorm:"size:32;index;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (StaffLocationModel) TableName() string { return "staff_locations" }

type LocationModel struct {
	ID      string `gorm:"primaryKey;type:varchar(32)"`
	Name    string `gorm:"size:100;not null"`
	Address string `gorm:"size:255"`
	Active  bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (LocationModel) TableName() string { return "locations" }

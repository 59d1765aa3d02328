package entity

import "time"

type APIKey struct {
	Base
	Key           string `gorm:"uniqueIndex;type:varchar(64);not null"`
	Name          string `gorm:"not null"`
	IsActive      bool   `gorm:"default:true"`
	LastUsedAt    *time.Time
	CreatedBy     string `gorm:"not null"`
	CreatedByUser User   `gorm:"foreignKey:CreatedBy"`
}

func (APIKey) TableName() string {
	return "api_keys"
}

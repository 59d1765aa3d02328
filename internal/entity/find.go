package entity

import (
	"database/sql"

	"github.com/finds-lab/backend/pkg/enum"
)

type CategoryType string

var (
	CategoryCoins    = enum.New(CategoryType("coins"))
	CategoryPottery  = enum.New(CategoryType("pottery"))
	CategoryTools    = enum.New(CategoryType("tools"))
	CategoryJewelry  = enum.New(CategoryType("jewelry"))
	CategoryFossils  = enum.New(CategoryType("fossils"))
	CategoryMilitary = enum.New(CategoryType("military"))
	CategoryOther    = enum.New(CategoryType("other"))
)

// CategoryNames is the fixed enumeration in display order.
var CategoryNames = []string{
	"coins", "pottery", "tools", "jewelry", "fossils", "military", "other",
}

type Find struct {
	SnowflakeBase
	Title       string        `gorm:"not null"`
	Description string        `gorm:"type:text;not null"`
	Location    string        `gorm:"not null"`
	Category    CategoryType  `gorm:"not null;index"`
	Images      Array[string] `gorm:"type:text"`
	UserID      sql.NullString
	User        User `gorm:"foreignKey:UserID"`
	AuthorName  sql.NullString
}

func (Find) TableName() string {
	return "finds"
}

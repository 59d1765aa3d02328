package entity

import (
	"database/sql"

	"github.com/finds-lab/backend/pkg/enum"
)

type VerdictType string

var (
	VerdictKeep   = enum.New(VerdictType("keep"))
	VerdictDonate = enum.New(VerdictType("donate"))
	VerdictSell   = enum.New(VerdictType("sell"))
	VerdictThrow  = enum.New(VerdictType("throw"))
)

type Answer struct {
	SnowflakeBase
	Content    string `gorm:"type:text;not null"`
	Verdict    sql.NullString
	FindID     int64 `gorm:"index;not null"`
	Find       Find  `gorm:"foreignKey:FindID"`
	UserID     sql.NullString
	User       User `gorm:"foreignKey:UserID"`
	AuthorName sql.NullString
}

func (Answer) TableName() string {
	return "answers"
}

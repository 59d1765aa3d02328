package entity

import (
	"database/sql"

	"github.com/finds-lab/backend/pkg/enum"
)

type GlobalRole string

var (
	RoleUser      = enum.New(GlobalRole("user"))
	RoleModerator = enum.New(GlobalRole("moderator"))
	RoleDev       = enum.New(GlobalRole("dev"))
)

type User struct {
	Base
	Name         sql.NullString
	Email        string     `gorm:"unique;not null"`
	PasswordHash string     `gorm:"not null"`
	Role         GlobalRole `gorm:"default:user"`
}

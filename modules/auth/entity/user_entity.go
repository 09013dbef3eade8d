package entity

import (
	"meteocal/core/entity"
)

type User struct {
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Password  string `db:"password" json:"-"`
	UserGroup string `db:"user_group" json:"user_group"`
	entity.BaseEntity
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

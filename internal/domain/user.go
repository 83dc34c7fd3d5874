package domain

import "time"

const KindUser = "user"

// User 用户；Password 只保存 bcrypt 哈希，RegistrationTime 由数据库写入
type User struct {
	ID               int64     `gorm:"primaryKey"`
	Name             string    `gorm:"size:50;uniqueIndex;not null"`
	Password         string    `gorm:"size:70;not null"`
	RegistrationTime time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "app_user" }

type UserRepository interface {
	FindByID(id int64) (*User, error)
	Create(u *User) error
	Update(u *User, columns ...string) error
	Delete(u *User) error
}

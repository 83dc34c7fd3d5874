package user

import (
	"time"

	"ad-board/internal/domain"
)

// Record 对外的用户视图，不含密码
type Record struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	RegistrationTime time.Time `json:"registration_time"`
}

func toRecord(u *domain.User) Record {
	return Record{ID: u.ID, Name: u.Name, RegistrationTime: u.RegistrationTime}
}

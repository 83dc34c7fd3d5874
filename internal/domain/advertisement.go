package domain

import "time"

const KindAdvertisement = "advertisement"

// Advertisement 广告；删除 Owner 时级联删除
type Advertisement struct {
	ID           int64     `gorm:"primaryKey"`
	Heading      string    `gorm:"size:100;not null"`
	Description  string    `gorm:"size:500;not null"`
	DateCreation time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	OwnerID      int64     `gorm:"not null;index"`
	Owner        *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (Advertisement) TableName() string { return "app_advertisement" }

type AdvertisementRepository interface {
	FindByID(id int64) (*Advertisement, error)
	IDsByOwner(ownerID int64) ([]int64, error)
	Create(a *Advertisement) error
	Update(a *Advertisement, columns ...string) error
	Delete(a *Advertisement) error
}

// Models 按依赖顺序返回需要建表的模型
func Models() []any {
	return []any{&User{}, &Advertisement{}}
}

package repo

import (
	"errors"

	"gorm.io/gorm"

	"ad-board/internal/domain"
)

var _ domain.AdvertisementRepository = (*AdvertisementRepo)(nil)

type AdvertisementRepo struct{ db *gorm.DB }

func NewAdvertisementRepo(db *gorm.DB) *AdvertisementRepo { return &AdvertisementRepo{db: db} }

func (r *AdvertisementRepo) FindByID(id int64) (*domain.Advertisement, error) {
	var a domain.Advertisement
	err := r.db.First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound(domain.KindAdvertisement)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdvertisementRepo) IDsByOwner(ownerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&domain.Advertisement{}).Where("owner_id = ?", ownerID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

// Create owner_id 是否存在只由外键判断
func (r *AdvertisementRepo) Create(a *domain.Advertisement) error {
	if err := insertReturningID(r.db, a); err != nil {
		return advertisementConflicts.translate(err)
	}
	return r.db.First(a, a.ID).Error
}

func (r *AdvertisementRepo) Update(a *domain.Advertisement, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return advertisementConflicts.translate(r.db.Model(a).Select(columns).Updates(a).Error)
}

func (r *AdvertisementRepo) Delete(a *domain.Advertisement) error {
	return r.db.Delete(a).Error
}

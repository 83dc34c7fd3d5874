package repo

import (
	"errors"

	"gorm.io/gorm"

	"ad-board/internal/domain"
)

var _ domain.UserRepository = (*UserRepo)(nil)

// UserRepo 绑定在单个请求的存储会话上
type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) FindByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound(domain.KindUser)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create 注册时间由数据库生成，插入后回读整行
func (r *UserRepo) Create(u *domain.User) error {
	if err := insertReturningID(r.db, u); err != nil {
		return userConflicts.translate(err)
	}
	return r.db.First(u, u.ID).Error
}

// Update 只写 columns 里列出的字段；调用方先在内存里合并好
func (r *UserRepo) Update(u *domain.User, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return userConflicts.translate(r.db.Model(u).Select(columns).Updates(u).Error)
}

// Delete 名下广告由外键级联删除
func (r *UserRepo) Delete(u *domain.User) error {
	return r.db.Delete(u).Error
}

package user

import "ad-board/internal/domain"

type CreateUser struct {
	Name     *string `json:"name" validate:"required,min=1,max=50"`
	Password *string `json:"password" validate:"required,min=8,maxbytes=72"`
}

// PatchUser 出现的字段才会被写入
type PatchUser struct {
	Name     *string `json:"name" validate:"min=1,max=50"`
	Password *string `json:"password" validate:"min=8,maxbytes=72"`
}

// Apply 合并到 u 并返回改动的列；Password 此时应已是哈希
func (p *PatchUser) Apply(u *domain.User) []string {
	var cols []string
	if p.Name != nil {
		u.Name = *p.Name
		cols = append(cols, "name")
	}
	if p.Password != nil {
		u.Password = *p.Password
		cols = append(cols, "password")
	}
	return cols
}

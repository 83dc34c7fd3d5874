package advertisement

import "ad-board/internal/domain"

type CreateAdvertisement struct {
	Heading     *string `json:"heading" validate:"required,max=100"`
	Description *string `json:"description" validate:"required,min=5,max=500"`
	OwnerID     *int64  `json:"owner_id" validate:"required"`
}

type PatchAdvertisement struct {
	Heading     *string `json:"heading" validate:"max=100"`
	Description *string `json:"description" validate:"min=5,max=500"`
	OwnerID     *int64  `json:"owner_id"`
}

func (p *PatchAdvertisement) Apply(a *domain.Advertisement) []string {
	var cols []string
	if p.Heading != nil {
		a.Heading = *p.Heading
		cols = append(cols, "heading")
	}
	if p.Description != nil {
		a.Description = *p.Description
		cols = append(cols, "description")
	}
	if p.OwnerID != nil {
		a.OwnerID = *p.OwnerID
		cols = append(cols, "owner_id")
	}
	return cols
}

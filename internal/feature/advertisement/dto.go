package advertisement

import (
	"time"

	"ad-board/internal/domain"
)

type Record struct {
	ID           int64     `json:"id"`
	Heading      string    `json:"heading"`
	Description  string    `json:"description"`
	OwnerID      int64     `json:"owner_id"`
	DateCreation time.Time `json:"date_creation"`
}

func toRecord(a *domain.Advertisement) Record {
	return Record{
		ID:           a.ID,
		Heading:      a.Heading,
		Description:  a.Description,
		OwnerID:      a.OwnerID,
		DateCreation: a.DateCreation,
	}
}

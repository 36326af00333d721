package model

import (
	"time"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
)

// Content is any user-generated item tagged with the city it was created
// in. The city tag is write-once: it is fixed at creation and decides who
// may view, edit or moderate the item.
type Content struct {
	ID        string            `json:"id"`
	CityID    string            `json:"city_id"`
	AuthorID  string            `json:"author_id"`
	Type      enums.ContentType `json:"type"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
}

func (c Content) TenantID() string {
	return c.CityID
}

package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Book is the canonical catalog entity. The core field set is required for
// every title; print-edition metadata (isbn/pages/publisher) is optional so a
// single shape serves both digital-only and print listings.
type Book struct {
	ID          string          `gorm:"type:text;primaryKey" json:"id"`
	Title       string          `gorm:"type:text;not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	CoverImage  string          `gorm:"type:text;not null" json:"cover_image"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Featured    bool            `gorm:"not null;default:false" json:"featured"`

	ISBN      *string `gorm:"type:text" json:"isbn,omitempty"`
	Pages     *int    `json:"pages,omitempty"`
	Publisher *string `gorm:"type:text" json:"publisher,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"updated_at"`
}

// Extensions returns the optional print metadata as a flat map, which is how
// cart lines carry catalog extras without a second book shape.
func (b Book) Extensions() map[string]string {
	out := map[string]string{}
	if b.ISBN != nil && *b.ISBN != "" {
		out["isbn"] = *b.ISBN
	}
	if b.Pages != nil && *b.Pages > 0 {
		out["pages"] = strconv.Itoa(*b.Pages)
	}
	if b.Publisher != nil && *b.Publisher != "" {
		out["publisher"] = *b.Publisher
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage stores contact-form submissions from the site.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null" json:"email"`
	Subject   string    `gorm:"type:text;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

package contact

import (
	"context"

	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists inbound contact messages.
type Repository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

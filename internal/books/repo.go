package books

import (
	"context"

	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines read operations over the book catalog.
type Repository interface {
	List(ctx context.Context, featuredOnly bool) ([]models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, featuredOnly bool) ([]models.Book, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if featuredOnly {
		query = query.Where("featured = ?", true)
	}
	var rows []models.Book
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

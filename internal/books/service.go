package books

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
)

// Service exposes catalog reads to the API and the cart.
type Service interface {
	List(ctx context.Context, featuredOnly bool) ([]models.Book, error)
	Get(ctx context.Context, id string) (*models.Book, error)
}

type service struct {
	repo Repository
}

// NewService wires catalog dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "books repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, featuredOnly bool) ([]models.Book, error) {
	rows, err := s.repo.List(ctx, featuredOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list books")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Book, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "book id is required")
	}
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}
	return book, nil
}

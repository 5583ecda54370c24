package books

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
)

type fakeRepository struct {
	listFn func(ctx context.Context, featuredOnly bool) ([]models.Book, error)
	getFn  func(ctx context.Context, id string) (*models.Book, error)
}

func (f *fakeRepository) List(ctx context.Context, featuredOnly bool) ([]models.Book, error) {
	if f.listFn != nil {
		return f.listFn(ctx, featuredOnly)
	}
	return nil, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func TestListPassesFeaturedFilter(t *testing.T) {
	var gotFeatured bool
	repo := &fakeRepository{
		listFn: func(ctx context.Context, featuredOnly bool) ([]models.Book, error) {
			gotFeatured = featuredOnly
			return []models.Book{{ID: "b1", Title: "First Light"}}, nil
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	rows, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !gotFeatured {
		t.Fatal("expected featured filter to reach repo")
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 book, got %d", len(rows))
	}
}

func TestGetMapsRecordNotFound(t *testing.T) {
	svc, _ := NewService(&fakeRepository{})
	_, err := svc.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", pkgerrors.As(err).Code())
	}
}

func TestGetRequiresID(t *testing.T) {
	svc, _ := NewService(&fakeRepository{})
	_, err := svc.Get(context.Background(), "  ")
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetWrapsRepoFailures(t *testing.T) {
	repo := &fakeRepository{
		getFn: func(ctx context.Context, id string) (*models.Book, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc, _ := NewService(repo)
	_, err := svc.Get(context.Background(), "b1")
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

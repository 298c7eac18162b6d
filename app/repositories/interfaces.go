package repositories

import (
	"context"

	"blogposts/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	InsertMany(ctx context.Context, posts []models.NewPost) ([]*models.Post, error)
	Insert(ctx context.Context, post models.NewPost) (*models.Post, error)
	FindAll(ctx context.Context) ([]*models.Post, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	UpdateByID(ctx context.Context, id string, update models.PostUpdate) error
	DeleteByID(ctx context.Context, id string) error
	Drop(ctx context.Context) error
}

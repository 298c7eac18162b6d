package services

import (
	"context"
	"fmt"

	"blogposts/app/models"
	"blogposts/app/repositories"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	faker    *gofakeit.Faker
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		faker:    gofakeit.New(0),
	}
}

// CreatePost validates and stores a new blog post
func (s *PostService) CreatePost(ctx context.Context, post models.NewPost) (*models.Post, error) {
	if err := post.Validate(); err != nil {
		return nil, err
	}

	created, err := s.postRepo.Insert(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	log.Tracef("new post %s: [%s] added", created.ID, created.Title)
	return created, nil
}

// ListPosts returns all posts
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// CountPosts returns the number of stored posts
func (s *PostService) CountPosts(ctx context.Context) (int, error) {
	count, err := s.postRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

// UpdatePost applies a partial update to an existing post
func (s *PostService) UpdatePost(ctx context.Context, id string, update models.PostUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	if err := s.postRepo.UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("update post %s: %w", id, err)
	}
	log.Tracef("post %s updated", id)
	return nil
}

// DeletePost deletes a post. Deleting a missing post succeeds.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if err := s.postRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	log.Tracef("post %s deleted", id)
	return nil
}

// FakePost generates a random valid post
func (s *PostService) FakePost() models.NewPost {
	return models.NewPost{
		Title:   s.faker.Sentence(6),
		Content: s.faker.Paragraph(2, 4, 12, "\n"),
		Author: models.Author{
			FirstName: s.faker.FirstName(),
			LastName:  s.faker.LastName(),
		},
	}
}

// SeedPosts bulk-inserts n generated posts
func (s *PostService) SeedPosts(ctx context.Context, n int) ([]*models.Post, error) {
	if n < 1 {
		return nil, fmt.Errorf("seed count must be positive, got %d", n)
	}

	seed := make([]models.NewPost, 0, n)
	for i := 0; i < n; i++ {
		seed = append(seed, s.FakePost())
	}

	created, err := s.postRepo.InsertMany(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("seed posts: %w", err)
	}

	log.Debugf("seeded %d posts", len(created))
	return created, nil
}

package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"blogposts/app/models"
	"blogposts/app/repositories"

	"github.com/google/uuid"
)

var _ repositories.PostRepository = (*PostRepository)(nil)

// PostRepository is an in-memory PostRepository. Setting Err makes every
// call fail with it, which simulates an unavailable store.
type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex

	Err error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]*models.Post),
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[string]*models.Post)
}

func (m *PostRepository) InsertMany(ctx context.Context, posts []models.NewPost) ([]*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range posts {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	created := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}
		post := &models.Post{
			ID:      id.String(),
			Title:   p.Title,
			Content: p.Content,
			Author:  p.Author,
			Created: time.Now().UTC(),
		}
		stored := *post
		m.posts[post.ID] = &stored
		created = append(created, post)
	}
	return created, nil
}

func (m *PostRepository) Insert(ctx context.Context, post models.NewPost) (*models.Post, error) {
	created, err := m.InsertMany(ctx, []models.NewPost{post})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (m *PostRepository) FindAll(ctx context.Context) ([]*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		p := *post
		posts = append(posts, &p)
	}
	// v7 ids sort by creation time
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *PostRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.posts), nil
}

func (m *PostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	p := *post
	return &p, nil
}

func (m *PostRepository) UpdateByID(ctx context.Context, id string, update models.PostUpdate) error {
	if m.Err != nil {
		return m.Err
	}
	if err := update.Validate(); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return repositories.ErrNotFound
	}
	update.Apply(post)
	return nil
}

func (m *PostRepository) DeleteByID(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.posts, id)
	return nil
}

func (m *PostRepository) Drop(ctx context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	m.Clear()
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"blogposts/app/models"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
)

var _ PostRepository = (*BadgerPostRepository)(nil)

const maxUpdateAttempts = 10

// BadgerPostRepository implements PostRepository using BadgerDB.
// Every post is one JSON document, so each write is atomic per post.
type BadgerPostRepository struct {
	db  *badger.DB
	now func() time.Time

	updateMu sync.Mutex
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{
		db:  db,
		now: time.Now,
	}
}

// InsertMany stores the posts and returns them with their generated ids and
// creation times, in input order. Validation covers the whole batch before
// anything is written. A batch too big for one badger transaction is committed
// in several, so only batches that fit are all-or-nothing.
func (r *BadgerPostRepository) InsertMany(ctx context.Context, posts []models.NewPost) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, p := range posts {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("post %d: %w", i, err)
		}
	}

	created := make([]*models.Post, 0, len(posts))
	txn := r.db.NewTransaction(true)
	defer func() { txn.Discard() }()

	commits := 0
	for _, p := range posts {
		id, err := newPostID()
		if err != nil {
			return nil, err
		}
		post := &models.Post{
			ID:      id,
			Title:   p.Title,
			Content: p.Content,
			Author:  p.Author,
			Created: r.now().UTC(),
		}

		data, err := marshalEntity(post)
		if err != nil {
			return nil, err
		}
		key := []byte(PostKeyPrefix + post.ID)

		err = txn.Set(key, data)
		if errors.Is(err, badger.ErrTxnTooBig) {
			if err := txn.Commit(); err != nil {
				return nil, err
			}
			commits++
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			txn = r.db.NewTransaction(true)
			err = txn.Set(key, data)
		}
		if err != nil {
			return nil, err
		}
		created = append(created, post)
	}
	if err := txn.Commit(); err != nil {
		return nil, err
	}

	log.Tracef("inserted %d posts in %d transactions", len(created), commits+1)
	return created, nil
}

// Insert stores a single post
func (r *BadgerPostRepository) Insert(ctx context.Context, post models.NewPost) (*models.Post, error) {
	created, err := r.InsertMany(ctx, []models.NewPost{post})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// FindAll returns every post in creation order
func (r *BadgerPostRepository) FindAll(ctx context.Context) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the number of stored posts
func (r *BadgerPostRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID retrieves a post by ID
func (r *BadgerPostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, ok := postKey(id)
	if !ok {
		return nil, ErrNotFound
	}

	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateByID applies a partial update. ID and Created are never touched.
// Updates through this repository are serialized; a conflict with a concurrent
// delete or drop is retried.
func (r *BadgerPostRepository) UpdateByID(ctx context.Context, id string, update models.PostUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := update.Validate(); err != nil {
		return err
	}
	key, ok := postKey(id)
	if !ok {
		return ErrNotFound
	}

	r.updateMu.Lock()
	defer r.updateMu.Unlock()

	var err error
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			return updateInTxn(txn, key, update)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		log.Debugf("update post %s: conflict, attempt %d", id, attempt)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return err
}

func updateInTxn(txn *badger.Txn, key []byte, update models.PostUpdate) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var post models.Post
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	}); err != nil {
		return err
	}

	update.Apply(&post)

	data, err := marshalEntity(&post)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// DeleteByID deletes a post by ID. Deleting a missing post is not an error.
func (r *BadgerPostRepository) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, ok := postKey(id)
	if !ok {
		log.Tracef("delete post: ignoring malformed id [%s]", id)
		return nil
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Drop removes every post document
func (r *BadgerPostRepository) Drop(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.DropPrefix([]byte(PostKeyPrefix))
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Options configures how the document store is opened.
type Options struct {
	// Path is the badger directory. Empty or "test_db" opens a throwaway
	// database in a fresh temporary directory.
	Path     string
	InMemory bool
	// Logger receives badger's own log output; nil silences it.
	Logger badger.Logger
}

// Repository owns the badger handle. It is created per process or per test run
// and passed explicitly to everything that needs it.
type Repository struct {
	db       *badger.DB
	dbPath   string
	isTestDB bool
	posts    *BadgerPostRepository
}

func Open(options Options) (*Repository, error) {
	path := options.Path
	isTest := false

	var opts badger.Options
	switch {
	case options.InMemory:
		opts = badger.DefaultOptions("").WithInMemory(true)
		path = ""
	case path == "" || path == "test_db":
		// unique temporary directory per test database, for isolation
		tempPath, err := os.MkdirTemp("", "blogposts_test_db_")
		if err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
		path = tempPath
		isTest = true
		opts = badger.DefaultOptions(path)
	default:
		opts = badger.DefaultOptions(path)
	}

	opts = opts.
		WithLogger(options.Logger).
		WithNumVersionsToKeep(1)
	if isTest || options.InMemory {
		opts = opts.WithSyncWrites(false).WithNumGoroutines(1)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db [%s]: %w", path, err)
	}

	log.Debugf("document store opened [path: %q, in memory: %t]", path, options.InMemory)

	return &Repository{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
		posts:    NewBadgerPostRepository(db),
	}, nil
}

// Posts returns the post collection
func (r *Repository) Posts() *BadgerPostRepository {
	return r.posts
}

// Ping reports whether the store can serve reads.
func (r *Repository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.db.IsClosed() {
		return errors.New("document store is closed")
	}
	return r.db.View(func(txn *badger.Txn) error { return nil })
}

// Backup writes a full backup of the store
func (r *Repository) Backup(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := r.db.Backup(w, 0); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup
func (r *Repository) Restore(ctx context.Context, rd io.Reader) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		// badger panics on some corrupt inputs
		if rec := recover(); rec != nil {
			err = fmt.Errorf("restore: corrupt backup: %v", rec)
		}
	}()
	if err := r.db.Load(rd, 4); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

// Clear drops every key in the store, posts included
func (r *Repository) Clear() error {
	return r.db.DropAll()
}

func (r *Repository) Close() error {
	err := r.db.Close()

	// clean up test database
	if r.isTestDB {
		if rmErr := os.RemoveAll(r.dbPath); rmErr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to cleanup test database: %w", rmErr))
		}
	}
	return err
}

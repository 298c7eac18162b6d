package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewPostValidation(t *testing.T) {
	tests := []struct {
		name      string
		post      NewPost
		wantField string
	}{
		{
			name: "valid post",
			post: NewPost{
				Title:   "Valid Title",
				Content: "Some content",
				Author:  Author{FirstName: "James", LastName: "Joyce"},
			},
		},
		{
			name: "empty content is allowed",
			post: NewPost{
				Title:  "Valid Title",
				Author: Author{FirstName: "James", LastName: "Joyce"},
			},
		},
		{
			name: "missing title",
			post: NewPost{
				Content: "Some content",
				Author:  Author{FirstName: "James", LastName: "Joyce"},
			},
			wantField: "title",
		},
		{
			name: "missing first name",
			post: NewPost{
				Title:  "Valid Title",
				Author: Author{LastName: "Joyce"},
			},
			wantField: "author.firstName",
		},
		{
			name: "missing last name",
			post: NewPost{
				Title:  "Valid Title",
				Author: Author{FirstName: "James"},
			},
			wantField: "author.lastName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestPostUpdateValidation(t *testing.T) {
	tests := []struct {
		name    string
		update  PostUpdate
		wantErr bool
	}{
		{
			name:    "empty update",
			update:  PostUpdate{},
			wantErr: true,
		},
		{
			name:   "title only",
			update: PostUpdate{Title: strPtr("ulysses")},
		},
		{
			name:   "empty content",
			update: PostUpdate{Content: strPtr("")},
		},
		{
			name:    "empty title",
			update:  PostUpdate{Title: strPtr("")},
			wantErr: true,
		},
		{
			name:    "partial author",
			update:  PostUpdate{Author: &Author{FirstName: "james"}},
			wantErr: true,
		},
		{
			name:   "full author",
			update: PostUpdate{Author: &Author{FirstName: "james", LastName: "joyce"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantErr {
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostUpdateApply(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	post := &Post{
		ID:      "0190a1b2-0000-7000-8000-000000000001",
		Title:   "Original",
		Content: "Original content",
		Author:  Author{FirstName: "Jane", LastName: "Austen"},
		Created: created,
	}

	PostUpdate{Content: strPtr("boring stuff")}.Apply(post)
	assert.Equal(t, "Original", post.Title)
	assert.Equal(t, "boring stuff", post.Content)
	assert.Equal(t, "Jane Austen", post.AuthorName())

	PostUpdate{
		Title:  strPtr("ulysses"),
		Author: &Author{FirstName: "james", LastName: "joyce"},
	}.Apply(post)
	assert.Equal(t, "ulysses", post.Title)
	assert.Equal(t, "james joyce", post.AuthorName())
	assert.Equal(t, "0190a1b2-0000-7000-8000-000000000001", post.ID)
	assert.Equal(t, created, post.Created)
}

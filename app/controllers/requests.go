package controllers

import (
	"time"

	"blogposts/app/models"

	"github.com/google/uuid"
)

// Pointers record whether a key was present in the request body at all,
// so an explicitly empty content is told apart from a missing one.

type authorRequest struct {
	FirstName *string `json:"firstName" validate:"required,min=1"`
	LastName  *string `json:"lastName" validate:"required,min=1"`
}

type createPostRequest struct {
	Title   *string        `json:"title" validate:"required,min=1"`
	Content *string        `json:"content" validate:"required"`
	Author  *authorRequest `json:"author" validate:"required"`
}

func (req createPostRequest) toNewPost() models.NewPost {
	return models.NewPost{
		Title:   *req.Title,
		Content: *req.Content,
		Author: models.Author{
			FirstName: *req.Author.FirstName,
			LastName:  *req.Author.LastName,
		},
	}
}

type updatePostRequest struct {
	ID      *string        `json:"id"`
	Title   *string        `json:"title"`
	Content *string        `json:"content"`
	Author  *authorRequest `json:"author"`
}

func (req updatePostRequest) toUpdate() models.PostUpdate {
	update := models.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.Author != nil {
		update.Author = &models.Author{
			FirstName: deref(req.Author.FirstName),
			LastName:  deref(req.Author.LastName),
		}
	}
	return update
}

// PostView is the API representation of a post
type PostView struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Created time.Time `json:"created"`
}

func newPostView(post *models.Post) PostView {
	return PostView{
		ID:      post.ID,
		Title:   post.Title,
		Content: post.Content,
		Author:  post.AuthorName(),
		Created: post.Created,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// sameID reports whether two post ids name the same post. UUIDs compare in
// canonical form, so case and braces do not matter.
func sameID(a, b string) bool {
	ua, errA := uuid.Parse(a)
	ub, errB := uuid.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return ua == ub
}

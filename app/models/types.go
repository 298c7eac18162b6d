package models

import "time"

// Author is the nested author document of a post.
type Author struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// Post represents a stored blog post.
type Post struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  Author    `json:"author"`
	Created time.Time `json:"created"`
}

// NewPost holds the caller supplied fields of a post that is about to be created.
// The store assigns ID and Created.
type NewPost struct {
	Title   string `validate:"required"`
	Content string
	Author  Author
}

// PostUpdate is a partial update of a post. Nil fields are left unchanged.
type PostUpdate struct {
	Title   *string
	Content *string
	Author  *Author
}

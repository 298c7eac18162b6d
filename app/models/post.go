package models

// AuthorName returns the display name of the post author.
func (p *Post) AuthorName() string {
	return p.Author.FirstName + " " + p.Author.LastName
}

// Validate checks a post before it is created.
func (p NewPost) Validate() error {
	return validationError(validate.Struct(p))
}

// Validate checks that the update changes something and that it never leaves
// the post with an empty title or a partial author.
func (u PostUpdate) Validate() error {
	if u.Title == nil && u.Content == nil && u.Author == nil {
		return &ValidationError{Reason: "no updatable fields given"}
	}
	if u.Title != nil && *u.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if u.Author != nil {
		if err := validate.Struct(u.Author); err != nil {
			return validationError(err)
		}
	}
	return nil
}

// Apply copies the set fields of the update onto the post.
func (u PostUpdate) Apply(p *Post) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Author != nil {
		p.Author = *u.Author
	}
}

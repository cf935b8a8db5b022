package model

import "time"

const SecretTitlePlaceholder = "This post is secret."

type Post struct {
	ID         int64
	Title      string
	Body       string
	AuthorID   int64
	AuthorName string
	Secret     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Redacted returns the listing form of a secret post shown to requesters
// who may not read it: the body is dropped and the title is replaced.
func (p Post) Redacted() Post {
	p.Title = SecretTitlePlaceholder
	p.Body = ""
	return p
}

// IsRedacted reports whether p is the listing form produced by Redacted.
func (p Post) IsRedacted() bool {
	return p.Secret && p == p.Redacted()
}

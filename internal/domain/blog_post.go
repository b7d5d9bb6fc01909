package domain

import (
	"strings"
	"time"
)

const wordsPerMinute = 200

// BlogPost is an article on the public site.
type BlogPost struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverImage  string
	AuthorID    *string
	Tags        []string
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReadingMinutes estimates reading time, never less than a minute.
func (p *BlogPost) ReadingMinutes() int {
	words := len(strings.Fields(p.Body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

package domain

import (
	"strings"
	"time"
)

// BlogPost is an article written by site staff. Author is free text since
// only admins publish.
type BlogPost struct {
	ID           string    `json:"id"`
	Author       string    `json:"author,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const readingWordsPerMinute = 200

// ReadingTimeMinutes estimates reading time, never below one minute.
func (p *BlogPost) ReadingTimeMinutes() int {
	words := len(strings.Fields(p.Content))
	minutes := (words + readingWordsPerMinute/2) / readingWordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Summary returns the first n words of the content, with an ellipsis when
// truncated.
func (p *BlogPost) Summary(n int) string {
	if p.Content == "" {
		return ""
	}
	parts := strings.Fields(p.Content)
	if len(parts) <= n {
		return strings.Join(parts, " ")
	}
	return strings.Join(parts[:n], " ") + "…"
}

// Validate checks invariants before a post is created or updated.
func (p *BlogPost) Validate() error {
	switch {
	case p.Title == "":
		return Invalid("post title is required")
	case p.Content == "":
		return Invalid("post content is required")
	}
	return nil
}

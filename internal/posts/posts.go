package posts

import "context"

// Post is one community post with its display title and body text.
type Post struct {
	Title string
	Body  string
}

// Searcher finds community posts matching a query within a named community.
type Searcher interface {
	Search(ctx context.Context, query, community string, limit int) ([]Post, error)
}

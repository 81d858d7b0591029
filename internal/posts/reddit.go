package posts

import (
	"context"
	"fmt"

	"github.com/vartanbeno/go-reddit/v2/reddit"
)

// RedditSearcher searches subreddit posts through the Reddit API.
type RedditSearcher struct {
	client *reddit.Client
}

// Credentials for a Reddit script app. All fields empty means the
// unauthenticated read-only API, which is enough for search.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// NewRedditSearcher builds a searcher, read-only unless script credentials
// are provided.
func NewRedditSearcher(creds Credentials) (*RedditSearcher, error) {
	var (
		client *reddit.Client
		err    error
	)
	if creds.ClientID != "" {
		client, err = reddit.NewClient(reddit.Credentials{
			ID:       creds.ClientID,
			Secret:   creds.ClientSecret,
			Username: creds.Username,
			Password: creds.Password,
		})
	} else {
		client, err = reddit.NewReadonlyClient()
	}
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}
	return &RedditSearcher{client: client}, nil
}

func (s *RedditSearcher) Search(ctx context.Context, query, community string, limit int) ([]Post, error) {
	opts := &reddit.ListPostSearchOptions{
		ListPostOptions: reddit.ListPostOptions{
			ListOptions: reddit.ListOptions{Limit: limit},
		},
		Sort: "relevance",
	}
	found, _, err := s.client.Subreddit.SearchPosts(ctx, query, community, opts)
	if err != nil {
		return nil, fmt.Errorf("search r/%s: %w", community, err)
	}
	result := make([]Post, 0, len(found))
	for _, p := range found {
		result = append(result, Post{Title: p.Title, Body: p.Body})
	}
	return result, nil
}

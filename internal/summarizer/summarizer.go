// Package summarizer compresses community travel posts into a short bullet
// digest used to ground itinerary generation.
package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"trip-agent/internal/llm"
	"trip-agent/internal/posts"
)

// LocationSummary is one digest entry distilled from one community post.
type LocationSummary struct {
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
}

var summarySchema = llm.Schema{
	Name:        "LocationSummary",
	Description: "A location mentioned in a travel post and what it offers.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"location":    map[string]any{"type": "string", "description": "The name of the location."},
			"description": map[string]any{"type": "string", "description": "A brief description of what the location offers."},
		},
		"required":             []string{"location", "description"},
		"additionalProperties": false,
	},
}

const summaryPromptFmt = `Extract and summarize the single most notable location and its key points from the travel post below. Provide the output as a JSON object with 'location' and 'description' fields:

%s`

const summaryTemperature = 0.7

var validate = validator.New()

// Summarizer turns community posts about a destination into digest bullets.
type Summarizer struct {
	search    posts.Searcher
	generator llm.Client
	log       *slog.Logger
	community string
	maxPosts  int
}

const (
	defaultCommunity = "travel"
	defaultMaxPosts  = 5
)

// New builds a Summarizer. Empty community and non-positive maxPosts fall
// back to defaults.
func New(search posts.Searcher, generator llm.Client, log *slog.Logger, community string, maxPosts int) *Summarizer {
	if community == "" {
		community = defaultCommunity
	}
	if maxPosts <= 0 {
		maxPosts = defaultMaxPosts
	}
	return &Summarizer{
		search:    search,
		generator: generator,
		log:       log,
		community: community,
		maxPosts:  maxPosts,
	}
}

// Summarize searches the community for posts about the location and
// interests and returns a newline-delimited bullet digest. Summarization is
// best-effort grounding: a failed search, an empty post, or a failed per-post
// generation is logged and skipped, and the digest degrades down to the
// empty string rather than failing the pipeline.
func (s *Summarizer) Summarize(ctx context.Context, location string, interests []string) string {
	query := buildQuery(location, interests)
	found, err := s.search.Search(ctx, query, s.community, s.maxPosts)
	if err != nil {
		s.log.Warn("post search failed; continuing without digest", "query", query, "err", err)
		return ""
	}

	// Per-post isolation: one malformed post or generation hiccup must not
	// block the batch. Entries keep post order so output is deterministic.
	summaries := make([]*LocationSummary, len(found))
	g := new(errgroup.Group)
	g.SetLimit(s.maxPosts)
	for i, post := range found {
		g.Go(func() error {
			summaries[i] = s.summarizePost(ctx, post)
			return nil
		})
	}
	_ = g.Wait()

	var b strings.Builder
	for _, sum := range summaries {
		if sum == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %s", sum.Location, sum.Description)
	}
	return b.String()
}

// summarizePost returns nil when the post is skipped.
func (s *Summarizer) summarizePost(ctx context.Context, post posts.Post) *LocationSummary {
	text := post.Body
	if text == "" {
		text = post.Title
	}
	if text == "" {
		s.log.Warn("skipping post with no text", "title", post.Title)
		return nil
	}

	raw, err := s.generator.Generate(ctx, fmt.Sprintf(summaryPromptFmt, text), summarySchema, summaryTemperature)
	if err != nil {
		s.log.Warn("skipping post: summarization failed", "title", post.Title, "err", err)
		return nil
	}

	var sum LocationSummary
	if err := json.Unmarshal([]byte(raw), &sum); err != nil {
		s.log.Warn("skipping post: summary is not valid JSON", "title", post.Title, "err", err)
		return nil
	}
	if err := validate.Struct(&sum); err != nil {
		s.log.Warn("skipping post: summary is missing fields", "title", post.Title, "err", err)
		return nil
	}
	return &sum
}

func buildQuery(location string, interests []string) string {
	parts := append([]string{"itinerary", location}, interests...)
	return strings.Join(parts, " ")
}

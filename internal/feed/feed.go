// Package feed downloads RSS/Atom feeds and normalizes their items for the
// extraction pipeline. The feed catalog is supplied by configuration, not
// compiled in.
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/hyperifyio/newsdigest/internal/fetch"
	"github.com/hyperifyio/newsdigest/internal/sanitize"
)

// Source is one feed endpoint.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Category groups sources the caller can request by key.
type Category struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Feeds       []Source `yaml:"feeds"`
}

// Catalog maps a category key to its sources.
type Catalog map[string]Category

// ContentKind tags the three shapes a feed item's content field can take,
// replacing attribute-probing on the parsed item.
type ContentKind int

const (
	ContentMissing ContentKind = iota
	ContentPlain
	ContentStructured
)

// Content is the normalized item content variant.
type Content struct {
	Kind       ContentKind
	Text       string
	Attributes map[string]string
}

// String produces the single normalized text form of the content; missing
// content yields the empty string.
func (c Content) String() string {
	if c.Kind == ContentMissing {
		return ""
	}
	return c.Text
}

// Item is one normalized feed entry.
type Item struct {
	Title       string
	Description string
	Link        string
	Published   time.Time
	Content     Content
}

// Fetcher downloads and parses feeds.
type Fetcher struct {
	Client *fetch.Client
	parser *gofeed.Parser
}

// NewFetcher returns a Fetcher with feed-appropriate request headers.
func NewFetcher(userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client: &fetch.Client{
			UserAgent: userAgent,
			Accept:    "application/rss+xml, application/xml, text/xml, */*",
			Timeout:   timeout,
		},
		parser: gofeed.NewParser(),
	}
}

// Fetch downloads and parses one feed, returning normalized items in feed
// order.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Item, error) {
	body, err := f.Client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	parsed, err := f.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, normalizeItem(it))
	}
	return items, nil
}

func normalizeItem(it *gofeed.Item) Item {
	return Item{
		Title:       sanitize.Title(it.Title),
		Description: sanitize.Description(it.Description),
		Link:        bestLink(it),
		Published:   publishedAt(it),
		Content:     normalizeContent(it),
	}
}

// bestLink prefers an http(s) GUID permalink over the link field; some
// sources put the canonical article URL only in the GUID.
func bestLink(it *gofeed.Item) string {
	if guid := strings.TrimSpace(it.GUID); strings.HasPrefix(guid, "http") {
		return guid
	}
	return strings.TrimSpace(it.Link)
}

// publishedAt is lenient: an unparseable date yields the zero time, never an
// error.
func publishedAt(it *gofeed.Item) time.Time {
	if it.PublishedParsed != nil {
		return *it.PublishedParsed
	}
	if it.UpdatedParsed != nil {
		return *it.UpdatedParsed
	}
	return time.Time{}
}

func normalizeContent(it *gofeed.Item) Content {
	if strings.TrimSpace(it.Content) == "" {
		return Content{Kind: ContentMissing}
	}
	text := sanitize.Collapse(sanitize.StripTags(it.Content))
	if len(it.Extensions) == 0 {
		return Content{Kind: ContentPlain, Text: text}
	}
	attrs := map[string]string{}
	for ns, ext := range it.Extensions {
		for name, values := range ext {
			for _, v := range values {
				if v.Value != "" {
					attrs[ns+":"+name] = v.Value
				}
			}
		}
	}
	if len(attrs) == 0 {
		return Content{Kind: ContentPlain, Text: text}
	}
	return Content{Kind: ContentStructured, Text: text, Attributes: attrs}
}

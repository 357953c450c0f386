// Package feed reads release titles from Newznab-compatible RSS indexers.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a Newznab API client for a single indexer feed.
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	categories []int
	limit      int
	httpClient *http.Client
	log        *slog.Logger
}

// Item is one entry of a feed. Its Title is the candidate text handed to the
// matcher.
type Item struct {
	Title       string
	GUID        string
	Link        string
	Size        int64
	PublishDate time.Time
	Feed        string
}

// APIError is the <error code=".." description=".."/> document Newznab
// returns instead of an RSS channel.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("newznab error %d: %s", e.Code, e.Description)
}

// Option configures a Client.
type Option func(*Client)

// WithCategories restricts Latest to the given Newznab categories.
func WithCategories(cats ...int) Option {
	return func(c *Client) { c.categories = cats }
}

// WithLimit sets the number of items requested per call.
func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new feed client.
func NewClient(name, baseURL, apiKey string, log *slog.Logger, opts ...Option) *Client {
	var clientLog *slog.Logger
	if log != nil {
		clientLog = log.With("component", "feed", "feed", name)
	}
	c := &Client{
		name:    name,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		limit:   100,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: clientLog,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the feed name.
func (c *Client) Name() string {
	return c.name
}

// URL returns the feed base URL.
func (c *Client) URL() string {
	return c.baseURL
}

// Caps performs a capabilities request to test connectivity.
func (c *Client) Caps(ctx context.Context) error {
	params := url.Values{}
	params.Set("t", "caps")
	params.Set("apikey", c.apiKey)

	resp, err := c.get(ctx, params)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("caps request failed: %d", resp.StatusCode)
	}
	return nil
}

// Latest returns the newest TV items of the feed.
func (c *Client) Latest(ctx context.Context) ([]Item, error) {
	params := url.Values{}
	params.Set("t", "tvsearch")
	return c.fetch(ctx, params, c.categories)
}

// Search queries the feed for items matching query.
func (c *Client) Search(ctx context.Context, query string, categories []int) ([]Item, error) {
	params := url.Values{}
	params.Set("t", "search")
	if query != "" {
		params.Set("q", query)
	}
	return c.fetch(ctx, params, categories)
}

// rss is decoded from either an <rss> document or an <error> document.
type rss struct {
	XMLName     xml.Name
	Code        int        `xml:"code,attr"`
	Description string     `xml:"description,attr"`
	Channel     rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title     string        `xml:"title"`
	GUID      string        `xml:"guid"`
	Link      string        `xml:"link"`
	Size      int64         `xml:"size"`
	PubDate   string        `xml:"pubDate"`
	Enclosure rssEnclosure  `xml:"enclosure"`
	Attrs     []newznabAttr `xml:"http://www.newznab.com/DTD/2010/feeds/attributes/ attr"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
}

type newznabAttr struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

var pubDateFormats = []string{
	time.RFC1123Z,
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 MST",
	time.RFC1123,
}

func (c *Client) fetch(ctx context.Context, params url.Values, categories []int) ([]Item, error) {
	start := time.Now()

	params.Set("apikey", c.apiKey)
	if len(categories) > 0 {
		cats := make([]string, len(categories))
		for i, cat := range categories {
			cats[i] = strconv.Itoa(cat)
		}
		params.Set("cat", strings.Join(cats, ","))
	}
	if c.limit > 0 {
		params.Set("limit", strconv.Itoa(c.limit))
	}

	resp, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var doc rss
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if doc.XMLName.Local == "error" {
		return nil, &APIError{Code: doc.Code, Description: doc.Description}
	}

	items := make([]Item, 0, len(doc.Channel.Items))
	for _, ri := range doc.Channel.Items {
		items = append(items, c.toItem(ri))
	}

	if c.log != nil {
		c.log.Debug("fetch complete", "t", params.Get("t"), "items", len(items), "duration_ms", time.Since(start).Milliseconds())
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, params url.Values) (*http.Response, error) {
	reqURL, err := url.Parse(c.baseURL + "/api")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) toItem(ri rssItem) Item {
	item := Item{
		Title: strings.TrimSpace(ri.Title),
		GUID:  ri.GUID,
		Link:  ri.Link,
		Feed:  c.name,
	}

	if ri.Enclosure.Length > 0 {
		item.Size = ri.Enclosure.Length
	} else if ri.Size > 0 {
		item.Size = ri.Size
	}
	if item.Size == 0 {
		for _, attr := range ri.Attrs {
			if attr.Name == "size" {
				item.Size, _ = strconv.ParseInt(attr.Value, 10, 64)
				break
			}
		}
	}

	if item.Link == "" {
		item.Link = ri.Enclosure.URL
	}
	// Feeds without a guid are keyed by their link.
	if item.GUID == "" {
		item.GUID = item.Link
	}

	if ri.PubDate != "" {
		for _, format := range pubDateFormats {
			if t, err := time.Parse(format, ri.PubDate); err == nil {
				item.PublishDate = t
				break
			}
		}
	}
	return item
}

// Package motivation fetches the quote and background image shown when
// writing a new entry. Both fetches degrade to a fixed fallback.
package motivation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Quote is a short quotation and its author.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// FallbackQuote is shown whenever the quote service cannot be reached.
var FallbackQuote = Quote{Text: "Keep going, you're doing great!", Author: "Reflectly"}

// Content is what the composer shows: a quote and an image URL, which may
// be empty.
type Content struct {
	Quote    Quote  `json:"quote"`
	ImageURL string `json:"imageURL,omitempty"`
}

// Source is anything that can supply motivational content.
type Source interface {
	Quote(ctx context.Context) Quote
	Image(ctx context.Context) string
}

// Options configures a Provider.
type Options struct {
	QuoteURL    string
	ImageURL    string
	ImageQuery  string
	UnsplashKey string
	Timeout     time.Duration
	Client      *http.Client
	Logger      *zap.Logger
}

// Provider talks to ZenQuotes and Unsplash.
type Provider struct {
	opts   Options
	client *http.Client
	log    *zap.Logger
	quotes *gobreaker.CircuitBreaker
	images *gobreaker.CircuitBreaker
	now    func() time.Time
}

// New builds a Provider. Missing URLs fall back to the public endpoints.
func New(opts Options) *Provider {
	if opts.QuoteURL == "" {
		opts.QuoteURL = "https://zenquotes.io/api/random"
	}
	if opts.ImageURL == "" {
		opts.ImageURL = "https://api.unsplash.com/photos/random"
	}
	if opts.ImageQuery == "" {
		opts.ImageQuery = "peace"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{
		opts:   opts,
		client: client,
		log:    log,
		quotes: newBreaker("quotes", log),
		images: newBreaker("images", log),
		now:    time.Now,
	}
}

func newBreaker(name string, log *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("motivation breaker state changed",
				zap.String("breaker", name), zap.Stringer("from", from), zap.Stringer("to", to))
		},
	})
}

// Load fetches a quote and an image. The two are independent; either may
// fall back while the other succeeds.
func (p *Provider) Load(ctx context.Context) Content {
	return Load(ctx, p)
}

// Load fetches both halves of the content from src.
func Load(ctx context.Context, src Source) Content {
	if src == nil {
		return Content{Quote: FallbackQuote}
	}
	return Content{Quote: src.Quote(ctx), ImageURL: src.Image(ctx)}
}

type zenQuote struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Quote returns a random quote or FallbackQuote.
func (p *Provider) Quote(ctx context.Context) Quote {
	v, err := p.quotes.Execute(func() (interface{}, error) {
		u, err := withCacheBuster(p.opts.QuoteURL, p.now())
		if err != nil {
			return nil, err
		}
		var quotes []zenQuote
		if err := p.getJSON(ctx, u, &quotes); err != nil {
			return nil, err
		}
		if len(quotes) == 0 || strings.TrimSpace(quotes[0].Q) == "" {
			return nil, errors.New("motivation: empty quote response")
		}
		return Quote{Text: strings.TrimSpace(quotes[0].Q), Author: strings.TrimSpace(quotes[0].A)}, nil
	})
	if err != nil {
		p.log.Warn("failed to fetch quote, using fallback", zap.Error(err))
		return FallbackQuote
	}
	return v.(Quote)
}

type unsplashPhoto struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

// Image returns the URL of a random photo or "" when unavailable.
func (p *Provider) Image(ctx context.Context) string {
	if p.opts.UnsplashKey == "" {
		p.log.Warn("unsplash access key is missing, skipping image")
		return ""
	}
	v, err := p.images.Execute(func() (interface{}, error) {
		u, err := url.Parse(p.opts.ImageURL)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		q.Set("query", p.opts.ImageQuery)
		q.Set("client_id", p.opts.UnsplashKey)
		u.RawQuery = q.Encode()
		busted, err := withCacheBuster(u.String(), p.now())
		if err != nil {
			return nil, err
		}
		var photo unsplashPhoto
		if err := p.getJSON(ctx, busted, &photo); err != nil {
			return nil, err
		}
		return photo.URLs.Regular, nil
	})
	if err != nil {
		p.log.Warn("failed to fetch image", zap.Error(err))
		return ""
	}
	return v.(string)
}

// redactURL drops the URL a url.Error carries, query credentials included.
func redactURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func (p *Provider) getJSON(ctx context.Context, u string, into interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("motivation: build request: %w", redactURL(err))
	}
	req.Header.Set("Accept", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("motivation: request %s: %w", req.URL.Host, redactURL(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("motivation: %s returned %s", req.URL.Host, resp.Status)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(into); err != nil {
		return fmt.Errorf("motivation: decode %s: %w", req.URL.Host, err)
	}
	return nil
}

// withCacheBuster adds t=<unix millis> so intermediaries do not serve the
// same random quote twice.
func withCacheBuster(raw string, now time.Time) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("motivation: invalid url %q: %w", raw, err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(now.UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Static always returns the same content. It stands in when fetching is
// disabled.
type Static struct {
	Content Content
}

func (s Static) Quote(context.Context) Quote {
	if s.Content.Quote.Text == "" {
		return FallbackQuote
	}
	return s.Content.Quote
}

func (s Static) Image(context.Context) string {
	return s.Content.ImageURL
}

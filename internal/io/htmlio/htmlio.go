package htmlio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/birdwatch/yardlist/internal/ent/photo"
	"github.com/birdwatch/yardlist/internal/ent/sighting"
	"github.com/birdwatch/yardlist/pkg/config"
	"github.com/gnames/gnfmt"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

const userAgent = "Mozilla/5.0 (compatible; YardlistBot/1.0)"

// lookup is a cached metadata lookup, including negative results so a
// page without og:image is not fetched on every run.
type lookup struct {
	PageURL   string
	ImageURL  string
	FetchedAt time.Time
}

// htmlio implements the photo.Fetcher interface by scraping OpenGraph
// and Twitter image metadata from photo pages.
type htmlio struct {
	cfg    config.Config
	cache  photo.Cache
	client *http.Client
}

// New returns a Fetcher with a bounded HTTP client and a persistent
// lookup cache.
func New(cfg config.Config, cache photo.Cache) photo.Fetcher {
	res := htmlio{
		cfg:    cfg,
		cache:  cache,
		client: &http.Client{Timeout: cfg.WebTimeout},
	}
	return &res
}

// ImageURL returns the direct image URL for a photo page, using the
// cache when possible. An empty result with a nil error means the
// page carries no image metadata.
func (h *htmlio) ImageURL(ctx context.Context, pageURL string) (string, error) {
	enc := gnfmt.GNgob{}

	if cached, err := h.cache.Get(pageURL); err == nil && cached != nil {
		var l lookup
		if err = enc.Decode(cached, &l); err == nil {
			return l.ImageURL, nil
		}
		slog.Warn("Cannot decode cached lookup", "error", err, "page", pageURL)
	}

	imgURL, err := h.scrape(ctx, pageURL)
	if err != nil {
		return "", err
	}

	l := lookup{PageURL: pageURL, ImageURL: imgURL, FetchedAt: time.Now()}
	val, err := enc.Encode(l)
	if err != nil {
		slog.Warn("Cannot encode lookup", "error", err, "page", pageURL)
		return imgURL, nil
	}
	if err = h.cache.Set(pageURL, val); err != nil {
		slog.Warn("Cannot cache lookup", "error", err, "page", pageURL)
	}
	return imgURL, nil
}

// FetchAll fans lookups out over JobsNum workers. Rows that already
// carry a direct image link keep it.
func (h *htmlio) FetchAll(
	ctx context.Context, rows []sighting.Row,
) (int, error) {
	type result struct {
		idx int
		url string
	}

	chIn := make(chan int)
	chOut := make(chan result)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(chIn)
		for i := range rows {
			if rows[i].ImageURL != "" || rows[i].PageURL() == "" {
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- i:
			}
		}
		return nil
	})

	var done = make(chan struct{})
	var count int
	go func() {
		defer close(done)
		for r := range chOut {
			rows[r.idx].ImageURL = r.url
			count++
		}
	}()

	workers := new(errgroup.Group)
	for w := 0; w < h.cfg.JobsNum; w++ {
		workers.Go(func() error {
			for i := range chIn {
				url, err := h.ImageURL(ctx, rows[i].PageURL())
				if err != nil {
					slog.Warn("Cannot fetch image metadata",
						"error", err, "species", rows[i].Name)
					continue
				}
				if url == "" {
					continue
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case chOut <- result{idx: i, url: url}:
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(chOut)
		return workers.Wait()
	})

	err := g.Wait()
	<-done
	return count, err
}

func (h *htmlio) scrape(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch of %s failed: %s", pageURL, resp.Status)
	}

	return metaImage(resp), nil
}

// metaImage extracts og:image, falling back to twitter:image. Both
// the property and name attributes are checked, because pages are
// inconsistent about which one they use.
func metaImage(resp *http.Response) string {
	var twitter string
	z := html.NewTokenizer(resp.Body)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return twitter
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "meta" {
				continue
			}
			var key, content string
			for _, a := range tok.Attr {
				switch a.Key {
				case "property", "name":
					key = a.Val
				case "content":
					content = a.Val
				}
			}
			if content == "" {
				continue
			}
			switch key {
			case "og:image":
				return content
			case "twitter:image":
				if twitter == "" {
					twitter = content
				}
			}
		}
	}
}

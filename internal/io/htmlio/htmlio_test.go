package htmlio_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/birdwatch/yardlist/internal/ent/sighting"
	"github.com/birdwatch/yardlist/internal/io/htmlio"
	"github.com/birdwatch/yardlist/pkg/config"
)

// memCache is an in-memory photo.Cache for tests.
type memCache struct {
	m map[string][]byte
}

func newMemCache() *memCache                     { return &memCache{m: make(map[string][]byte)} }
func (c *memCache) Open() error                  { return nil }
func (c *memCache) Close() error                 { return nil }
func (c *memCache) Get(k string) ([]byte, error) { return c.m[k], nil }
func (c *memCache) Set(k string, v []byte) error {
	c.m[k] = v
	return nil
}

const ogPage = `<html><head>
<meta property="og:image" content="https://img.example.org/anna.jpg"/>
<meta name="twitter:image" content="https://img.example.org/anna-tw.jpg"/>
</head><body></body></html>`

const twitterPage = `<html><head>
<meta name="twitter:image" content="https://img.example.org/jay.jpg"/>
</head><body></body></html>`

const namedOgPage = `<html><head>
<meta name="og:image" content="https://img.example.org/junco.jpg"/>
</head><body></body></html>`

const plainPage = `<html><head><title>no images here</title></head></html>`

var _ = Describe("ImageURL", func() {
	var srv *httptest.Server

	BeforeEach(func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/anna", page(ogPage))
		mux.HandleFunc("/jay", page(twitterPage))
		mux.HandleFunc("/junco", page(namedOgPage))
		mux.HandleFunc("/plain", page(plainPage))
		srv = httptest.NewServer(mux)
	})

	AfterEach(func() {
		srv.Close()
	})

	fetcher := func() (*memCache, func(path string) string) {
		cache := newMemCache()
		f := htmlio.New(config.New(), cache)
		return cache, func(path string) string {
			url, err := f.ImageURL(context.Background(), srv.URL+path)
			Expect(err).NotTo(HaveOccurred())
			return url
		}
	}

	It("prefers og:image", func() {
		_, get := fetcher()
		Expect(get("/anna")).To(Equal("https://img.example.org/anna.jpg"))
	})

	It("falls back to twitter:image", func() {
		_, get := fetcher()
		Expect(get("/jay")).To(Equal("https://img.example.org/jay.jpg"))
	})

	It("accepts og:image in a name attribute", func() {
		_, get := fetcher()
		Expect(get("/junco")).To(Equal("https://img.example.org/junco.jpg"))
	})

	It("returns an empty URL for pages without image metadata", func() {
		_, get := fetcher()
		Expect(get("/plain")).To(Equal(""))
	})

	It("caches lookups, including negative ones", func() {
		cache, get := fetcher()
		get("/anna")
		get("/plain")

		Expect(cache.m).To(HaveKey(srv.URL + "/anna"))
		Expect(cache.m).To(HaveKey(srv.URL + "/plain"))
	})

	It("serves repeated lookups from the cache", func() {
		cache, get := fetcher()
		Expect(get("/anna")).To(Equal("https://img.example.org/anna.jpg"))
		srv.Close()

		f := htmlio.New(config.New(), cache)
		url, err := f.ImageURL(context.Background(), srv.URL+"/anna")
		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(Equal("https://img.example.org/anna.jpg"))
	})

	It("fails on missing pages", func() {
		f := htmlio.New(config.New(), newMemCache())
		_, err := f.ImageURL(context.Background(), srv.URL+"/gone")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("FetchAll", func() {
	It("fills image links only where they are missing", func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/anna", page(ogPage))
		srv := httptest.NewServer(mux)
		defer srv.Close()

		rows := []sighting.Row{
			{Species: sighting.Species{
				Name:     "Anna's Hummingbird",
				PhotoURL: srv.URL + "/anna",
			}},
			{Species: sighting.Species{
				Name:     "Steller's Jay",
				PhotoURL: srv.URL + "/jay",
				ImageURL: "https://img.example.org/already.jpg",
			}},
			{Species: sighting.Species{Name: "Rock Pigeon"}},
		}

		f := htmlio.New(config.New(), newMemCache())
		count, err := f.FetchAll(context.Background(), rows)

		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
		Expect(rows[0].ImageURL).To(Equal("https://img.example.org/anna.jpg"))
		Expect(rows[1].ImageURL).To(Equal("https://img.example.org/already.jpg"))
		Expect(rows[2].ImageURL).To(Equal(""))
	})
})

func page(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}
}

package cache

import (
	"encoding/json"
	"time"

	"github.com/praxal/teasergen/internal/model"
)

// PageStore is a typed view over a Cache for scraped website pages,
// keyed by URL. A nil underlying cache disables storage entirely.
type PageStore struct {
	cache Cache
	ttl   time.Duration
}

func NewPageStore(c Cache, ttl time.Duration) *PageStore {
	return &PageStore{cache: c, ttl: ttl}
}

// Get returns the cached page for url, if present and decodable.
func (s *PageStore) Get(url string) (*model.ScrapedPage, bool) {
	if s == nil || s.cache == nil {
		return nil, false
	}
	raw, found := s.cache.Get(Key(url))
	if !found {
		return nil, false
	}
	var page model.ScrapedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false
	}
	return &page, true
}

// Put stores a fetched page. Errors are swallowed: a failed cache write
// must never fail the scrape that produced the page.
func (s *PageStore) Put(page *model.ScrapedPage) {
	if s == nil || s.cache == nil || page == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	_ = s.cache.Set(Key(page.URL), raw, s.ttl)
}

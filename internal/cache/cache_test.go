package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/praxal/teasergen/internal/model"
)

func TestKeyStable(t *testing.T) {
	a := Key("https://example.com/about")
	b := Key("https://example.com/about")
	if a != b {
		t.Errorf("same URL produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "teasergen:v1:") {
		t.Errorf("key %q missing version prefix", a)
	}
	if a == Key("https://example.com/products") {
		t.Error("different URLs produced the same key")
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}
	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Get = %q, %v; want \"v\", true", val, found)
	}
	c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("key survived Delete")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("fresh", []byte("data"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get("fresh"); !found || string(val) != "data" {
		t.Errorf("Get fresh = %q, %v", val, found)
	}

	if err := c.Set("stale", []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get("stale"); found {
		t.Error("expired entry returned")
	}
}

func TestNewDisabled(t *testing.T) {
	if c := New(model.CacheConfig{Enabled: false}); c != nil {
		t.Error("disabled config should produce nil cache")
	}
}

func TestPageStoreRoundTrip(t *testing.T) {
	store := NewPageStore(NewMemoryCache(time.Minute, time.Minute), time.Minute)

	page := &model.ScrapedPage{
		URL:      "https://example.com/about",
		PageType: "about",
		Content:  "We make precision components.",
	}
	store.Put(page)

	got, found := store.Get(page.URL)
	if !found {
		t.Fatal("page not found after Put")
	}
	if got.Content != page.Content || got.PageType != "about" {
		t.Errorf("got %+v", got)
	}
}

func TestPageStoreNilCache(t *testing.T) {
	store := NewPageStore(nil, time.Minute)
	store.Put(&model.ScrapedPage{URL: "https://example.com"})
	if _, found := store.Get("https://example.com"); found {
		t.Error("nil-backed store should never hit")
	}
}

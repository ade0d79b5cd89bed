package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Yahoo! Finance: MSFT News</title>
    <item>
      <title>Microsoft beats on cloud revenue</title>
      <link>https://finance.yahoo.com/news/msft-1</link>
      <pubDate>Fri, 17 Oct 2026 13:30:00 +0000</pubDate>
    </item>
    <item>
      <title>   </title>
      <link>https://finance.yahoo.com/news/blank</link>
      <pubDate>Fri, 17 Oct 2026 12:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Azure growth slows</title>
      <link>https://finance.yahoo.com/news/msft-2</link>
      <pubDate>Thu, 16 Oct 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Fourth item beyond limit</title>
      <link>https://finance.yahoo.com/news/msft-4</link>
      <pubDate>Wed, 15 Oct 2026 09:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func TestGetHeadlines_ParsesFeed(t *testing.T) {
	var symbol, ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol = r.URL.Query().Get("s")
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedFixture))
	}))
	defer srv.Close()

	feed := NewFeed(WithFeedURL(srv.URL))
	items, err := feed.GetHeadlines(context.Background(), "MSFT.US", 3)
	if err != nil {
		t.Fatalf("GetHeadlines failed: %v", err)
	}

	if symbol != "MSFT" {
		t.Errorf("s = %q, want MSFT (suffix stripped)", symbol)
	}
	if ua == "" {
		t.Error("expected a User-Agent header")
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (blank title skipped, limit 3 applied to raw items)", len(items))
	}
	if items[0].Title != "Microsoft beats on cloud revenue" || items[0].Date != "2026-10-17" {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if items[0].Publisher != Publisher {
		t.Errorf("Publisher = %q", items[0].Publisher)
	}
	if items[1].Date != "2026-10-16" {
		t.Errorf("second date = %q, want 2026-10-16", items[1].Date)
	}
}

func TestGetHeadlines_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	feed := NewFeed(WithFeedURL(srv.URL))
	if _, err := feed.GetHeadlines(context.Background(), "AAPL", 3); err == nil {
		t.Error("expected error for 503")
	}
}

func TestGetHeadlines_MalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed"))
	}))
	defer srv.Close()

	feed := NewFeed(WithFeedURL(srv.URL))
	if _, err := feed.GetHeadlines(context.Background(), "AAPL", 3); err == nil {
		t.Error("expected error for malformed feed")
	}
}

func TestItemDate_Fallbacks(t *testing.T) {
	if got := itemDate(&gofeed.Item{Published: "2026-10-01 sometime"}); got != "2026-10-01" {
		t.Errorf("itemDate raw = %q", got)
	}
	if got := itemDate(&gofeed.Item{}); got != "" {
		t.Errorf("itemDate empty = %q", got)
	}
}

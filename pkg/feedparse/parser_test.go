package feedparse

import (
	"testing"
	"time"

	"pocket-news/models/constants"
)

const feedWithMissingLink = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
<title>Test Feed</title>
<item>
  <title>Bitcoin climbs</title>
  <link>https://example.com/btc-climbs</link>
  <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
  <dc:creator>Jane Reporter</dc:creator>
</item>
<item>
  <title>Item with no link</title>
  <pubDate>Mon, 02 Jan 2006 16:04:05 GMT</pubDate>
</item>
<item>
  <title>Ethereum update</title>
  <link>https://example.com/eth-update</link>
</item>
</channel>
</rss>`

func TestParseDropsItemsMissingTitleOrLink(t *testing.T) {
	parser := New()
	articles := parser.Parse(feedWithMissingLink, "TestSource")

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	for _, article := range articles {
		if article.Title == "" || article.URL == "" {
			t.Errorf("parsed article with empty title or url: %+v", article)
		}
		if article.Source != "TestSource" {
			t.Errorf("unexpected source: %q", article.Source)
		}
	}
}

func TestParsePublishDate(t *testing.T) {
	parser := New()
	articles := parser.Parse(feedWithMissingLink, "TestSource")
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC).UnixMilli()
	if articles[0].Timestamp != want {
		t.Errorf("timestamp = %d, want %d", articles[0].Timestamp, want)
	}

	// Second surviving item has no pubDate and defaults to now.
	age := time.Now().UnixMilli() - articles[1].Timestamp
	if age < 0 || age > time.Minute.Milliseconds() {
		t.Errorf("dateless item should default to current time, got %d", articles[1].Timestamp)
	}
}

func TestParseAuthorFallback(t *testing.T) {
	parser := New()
	articles := parser.Parse(feedWithMissingLink, "TestSource")
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	if articles[0].Author != "Jane Reporter" {
		t.Errorf("author = %q, want dc:creator value", articles[0].Author)
	}
	if articles[1].Author != "TestSource" {
		t.Errorf("author fallback = %q, want source name", articles[1].Author)
	}
}

func TestParseMalformedDocument(t *testing.T) {
	parser := New()
	articles := parser.Parse("this is not xml at all <<<>>>", "Broken")
	if len(articles) != 0 {
		t.Errorf("malformed document should yield no articles, got %d", len(articles))
	}
}

func TestParseUsesPlaceholderWhenNoImage(t *testing.T) {
	parser := New()
	articles := parser.Parse(feedWithMissingLink, "TestSource")
	if len(articles) == 0 {
		t.Fatal("expected articles")
	}
	for _, article := range articles {
		if article.CoverImage != constants.DefaultCoverImageURL {
			t.Errorf("cover = %q, want placeholder", article.CoverImage)
		}
	}
}

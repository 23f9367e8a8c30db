package feedparse

import (
	"fmt"
	"testing"
)

const imageFeedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
<title>Images</title>
<item>
  <title>Item</title>
  <link>https://example.com/item</link>
  %s
</item>
</channel>
</rss>`

func parseSingle(t *testing.T, itemBody string) string {
	t.Helper()
	parser := New()
	articles := parser.Parse(fmt.Sprintf(imageFeedTemplate, itemBody), "Images")
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	return articles[0].CoverImage
}

func TestExtractImageFromMediaContent(t *testing.T) {
	got := parseSingle(t, `<media:content url="https://img.example.com/media.jpg" type="image/jpeg"/>`)
	if got != "https://img.example.com/media.jpg" {
		t.Errorf("cover = %q", got)
	}
}

func TestExtractImageFromEnclosure(t *testing.T) {
	got := parseSingle(t, `<enclosure url="https://img.example.com/enc.png" type="image/png" length="1234"/>`)
	if got != "https://img.example.com/enc.png" {
		t.Errorf("cover = %q", got)
	}
}

func TestExtractImageIgnoresNonImageEnclosure(t *testing.T) {
	got := parseSingle(t, `<enclosure url="https://example.com/episode.mp3" type="audio/mpeg" length="1234"/>`)
	if got == "https://example.com/episode.mp3" {
		t.Error("audio enclosure should not be used as cover")
	}
}

func TestExtractImageFromEncodedContent(t *testing.T) {
	got := parseSingle(t, `<content:encoded><![CDATA[<p>intro</p><img src="https://img.example.com/embedded.jpg" alt=""/>]]></content:encoded>`)
	if got != "https://img.example.com/embedded.jpg" {
		t.Errorf("cover = %q", got)
	}
}

func TestExtractImageFromDescription(t *testing.T) {
	got := parseSingle(t, `<description><![CDATA[text <img class="x" src="https://img.example.com/desc.jpg"> more]]></description>`)
	if got != "https://img.example.com/desc.jpg" {
		t.Errorf("cover = %q", got)
	}
}

func TestExtractImagePrefersMediaContent(t *testing.T) {
	got := parseSingle(t, `<media:content url="https://img.example.com/media.jpg" type="image/jpeg"/>
  <enclosure url="https://img.example.com/enc.png" type="image/png" length="1"/>
  <description><![CDATA[<img src="https://img.example.com/desc.jpg">]]></description>`)
	if got != "https://img.example.com/media.jpg" {
		t.Errorf("cover = %q, want media:content url first", got)
	}
}

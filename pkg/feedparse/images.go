package feedparse

import (
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
)

var imgTagPattern = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)

// ExtractImage makes a best-effort pass over a feed item for a
// representative image URL, first match wins: media:content url,
// image enclosure, <img> inside content:encoded, <img> inside the
// description. Returns "" when every attempt fails.
func ExtractImage(item *gofeed.Item) string {
	if url := mediaContentURL(item); url != "" {
		return url
	}

	for _, enclosure := range item.Enclosures {
		if enclosure.URL != "" && strings.HasPrefix(enclosure.Type, "image/") {
			return enclosure.URL
		}
	}

	if match := imgTagPattern.FindStringSubmatch(item.Content); match != nil {
		return match[1]
	}
	if match := imgTagPattern.FindStringSubmatch(item.Description); match != nil {
		return match[1]
	}

	return ""
}

func mediaContentURL(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, content := range media["content"] {
		if url := content.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}

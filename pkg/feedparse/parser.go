// Package feedparse turns raw RSS/Atom documents into article records,
// tolerating the malformed entries real feeds routinely contain.
package feedparse

import (
	"time"

	"pocket-news/models/constants"
	"pocket-news/models/entities"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
)

type Parser struct {
	fp *gofeed.Parser
}

func New() *Parser {
	return &Parser{fp: gofeed.NewParser()}
}

// Parse extracts articles from a raw feed document. Items missing a
// title or link are dropped silently; a document the parser cannot
// traverse at all yields an empty result, never an error.
func (parser *Parser) Parse(raw string, sourceName string) []entities.Article {
	feed, err := parser.fp.ParseString(raw)
	if err != nil {
		log.Warn().Err(err).
			Str(constants.LogSourceName, sourceName).
			Msg("Cannot parse feed document")
		return nil
	}

	articles := make([]entities.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			log.Debug().
				Str(constants.LogSourceName, sourceName).
				Msg("Skipping feed item without title or link")
			continue
		}

		cover := ExtractImage(item)
		if cover == "" {
			cover = constants.DefaultCoverImageURL
		}

		articles = append(articles, entities.Article{
			Title:      item.Title,
			URL:        item.Link,
			Source:     sourceName,
			Timestamp:  publishedMillis(item),
			Author:     authorOf(item, sourceName),
			CoverImage: cover,
		})
	}

	return articles
}

// publishedMillis falls back to the current time so recency-sorted
// views degrade instead of erroring on dateless items.
func publishedMillis(item *gofeed.Item) int64 {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UnixMilli()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UnixMilli()
	}
	return time.Now().UnixMilli()
}

func authorOf(item *gofeed.Item, sourceName string) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 && item.DublinCoreExt.Creator[0] != "" {
		return item.DublinCoreExt.Creator[0]
	}
	return sourceName
}

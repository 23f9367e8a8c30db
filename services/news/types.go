package news

import (
	"sync"

	"pocket-news/models/entities"
	"pocket-news/pkg/requestqueue"
)

// How many of the freshest articles make up the trending strip.
const trendingCount = 4

type Service interface {
	FetchNews(source string) ([]entities.Article, error)
	Refresh()
	LatestArticles() []entities.Article
	TrendingArticles() []entities.Article
}

type Impl struct {
	queue   requestqueue.Queue
	baseURL string

	mu       sync.RWMutex
	articles []entities.Article
}

type newsResponse struct {
	Articles []entities.Article `json:"articles"`
}

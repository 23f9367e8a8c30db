package feeds

import (
	"net/http"
	"sync"
	"time"

	"pocket-news/models/entities"
	"pocket-news/pkg/feedparse"
	"pocket-news/repositories/sources"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	// How long crawled articles stay readable after their source went
	// quiet. In-memory only; nothing survives a restart.
	articleCacheTTL     = 30 * time.Minute
	articleCacheCleanup = 10 * time.Minute

	feedAcceptHeader = "application/rss+xml, application/xml, text/xml, application/json"
)

type Service interface {
	FetchSource(sourceName string) []entities.Article
	CrawlAll()
	Articles() []entities.Article
}

type Impl struct {
	client       *http.Client
	parser       *feedparse.Parser
	sourceRepo   sources.Repository
	relays       []string
	userAgent    string
	articleCache *cache.Cache

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

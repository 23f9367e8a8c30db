package feeds

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"pocket-news/models/constants"
	"pocket-news/models/entities"
	"pocket-news/pkg/feedparse"
	"pocket-news/repositories/sources"

	"github.com/go-co-op/gocron/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

func New(sourceRepo sources.Repository, scheduler gocron.Scheduler) (*Impl, error) {
	service := &Impl{
		client: &http.Client{
			Timeout: time.Duration(viper.GetInt(constants.RSSTimeout)) * time.Second,
		},
		parser:       feedparse.New(),
		sourceRepo:   sourceRepo,
		relays:       constants.GetCorsRelays(),
		userAgent:    viper.GetString(constants.UserAgent),
		articleCache: cache.New(articleCacheTTL, articleCacheCleanup),
		limiters:     map[string]*rate.Limiter{},
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.FeedCrawlCronTab), false),
		gocron.NewTask(func() { service.CrawlAll() }),
		gocron.WithName("Crawl feed sources"),
	)
	if errJob != nil {
		return nil, errJob
	}

	if sourceRepo.Count() == 0 {
		for _, seed := range constants.GetDefaultSources() {
			err := sourceRepo.Create(entities.NewsSource{
				Name:            seed.Name,
				FeedType:        seed.FeedType,
				PrimaryURL:      seed.PrimaryURL,
				BackupURL:       seed.BackupURL,
				RateLimitMillis: seed.RateLimitMillis,
			})
			if err != nil {
				log.Error().Err(err).Str(constants.LogSourceName, seed.Name).Msg("Error on seeding source")
			}
		}
	}

	return service, nil
}

func (service *Impl) CrawlAll() {
	log.Info().Msg("Checking feed sources...")

	newsSources, err := service.sourceRepo.GetSources()
	if err != nil {
		log.Error().Err(err).Msg("Cannot load feed sources")
		return
	}

	for _, source := range newsSources {
		articles := service.FetchSource(source.Name)
		if len(articles) > 0 {
			service.articleCache.SetDefault(source.Name, articles)
		}
		log.Info().
			Str(constants.LogSourceName, source.Name).
			Int(constants.LogArticleCount, len(articles)).
			Msg("Source crawled")
	}
}

// Articles returns everything crawled recently, newest first per the
// feed order of each source.
func (service *Impl) Articles() []entities.Article {
	var all []entities.Article
	for _, item := range service.articleCache.Items() {
		all = append(all, item.Object.([]entities.Article)...)
	}
	return all
}

// FetchSource runs the acquisition cascade for one source: direct
// fetch, then each relay over the primary URL, then each relay over the
// backup URL. First attempt yielding at least one article wins. All
// failures degrade to an empty result; callers treat that as a normal
// outcome.
func (service *Impl) FetchSource(sourceName string) []entities.Article {
	source, err := service.sourceRepo.GetSource(sourceName)
	if err != nil {
		log.Warn().Err(err).Str(constants.LogSourceName, sourceName).Msg("Unknown feed source")
		return nil
	}

	if !service.limiterFor(source).Allow() {
		log.Debug().Str(constants.LogSourceName, sourceName).Msg("Skipping fetch due to source rate limit")
		return nil
	}

	for _, attempt := range service.attemptURLs(source) {
		articles := service.fetchAndParse(attempt, source.Name)
		if len(articles) > 0 {
			log.Info().
				Str(constants.LogSourceName, source.Name).
				Str(constants.LogFeedURL, attempt).
				Int(constants.LogArticleCount, len(articles)).
				Msg("Feed fetched")
			return articles
		}
	}

	log.Warn().Str(constants.LogSourceName, sourceName).Msg("All fetch attempts failed")
	return nil
}

// attemptURLs builds the ordered fallback chain. Total latency is
// bounded by the relay list length, not by retrying.
func (service *Impl) attemptURLs(source entities.NewsSource) []string {
	attempts := []string{source.PrimaryURL}
	for _, relay := range service.relays {
		attempts = append(attempts, relay+url.QueryEscape(source.PrimaryURL))
	}
	if source.BackupURL != "" {
		for _, relay := range service.relays {
			attempts = append(attempts, relay+url.QueryEscape(source.BackupURL))
		}
	}
	return attempts
}

func (service *Impl) fetchAndParse(feedURL string, sourceName string) []entities.Article {
	raw, err := service.fetchRaw(feedURL)
	if err != nil {
		log.Debug().Err(err).
			Str(constants.LogSourceName, sourceName).
			Str(constants.LogFeedURL, feedURL).
			Msg("Fetch attempt failed")
		return nil
	}
	return service.parser.Parse(raw, sourceName)
}

func (service *Impl) fetchRaw(feedURL string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", feedAcceptHeader)
	if service.userAgent != "" {
		req.Header.Set("User-Agent", service.userAgent)
	}

	resp, err := service.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("feed request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read feed body: %w", err)
	}
	return string(body), nil
}

// limiterFor lazily creates the per-source gate: one fetch per rate
// window, no queueing behind it.
func (service *Impl) limiterFor(source entities.NewsSource) *rate.Limiter {
	service.mu.Lock()
	defer service.mu.Unlock()

	limiter, found := service.limiters[source.Name]
	if !found {
		window := time.Duration(source.RateLimitMillis) * time.Millisecond
		limiter = rate.NewLimiter(rate.Every(window), 1)
		service.limiters[source.Name] = limiter
	}
	return limiter
}

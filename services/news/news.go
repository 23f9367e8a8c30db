package news

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"pocket-news/models/constants"
	"pocket-news/models/entities"
	"pocket-news/pkg/requestqueue"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler) (*Impl, error) {
	service := &Impl{
		queue:   requestqueue.New(),
		baseURL: viper.GetString(constants.NewsAPIBaseURL),
	}

	_, errJob := scheduler.NewJob(
		gocron.DurationJob(viper.GetDuration(constants.NewsRefreshInterval)),
		gocron.NewTask(func() { service.Refresh() }),
		gocron.WithName("Refresh news"),
	)
	if errJob != nil {
		return nil, errJob
	}

	if viper.GetBool(constants.Production) {
		service.Refresh()
	}

	return service, nil
}

// FetchNews pulls pre-aggregated articles from the backend API,
// optionally narrowed to one source. The response is consumed verbatim
// beyond the articles field. Errors here are terminal queue failures;
// the caller decides how to degrade.
func (service *Impl) FetchNews(source string) ([]entities.Article, error) {
	endpoint := fmt.Sprintf("%s/api/news", service.baseURL)
	if source != "" {
		endpoint += "?source=" + url.QueryEscape(source)
	}

	body, err := service.queue.Enqueue(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}

	var result newsResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}

	return dedupeByTitle(result.Articles), nil
}

// Refresh replaces the article set with a fresh fetch; on failure the
// previous set stays in place.
func (service *Impl) Refresh() {
	articles, err := service.FetchNews("")
	if err != nil {
		log.Error().Err(err).Msg("News refresh failed")
		return
	}

	service.mu.Lock()
	service.articles = articles
	service.mu.Unlock()

	log.Info().Int(constants.LogArticleCount, len(articles)).Msg("News refreshed")
}

func (service *Impl) LatestArticles() []entities.Article {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return append([]entities.Article(nil), service.articles...)
}

func (service *Impl) TrendingArticles() []entities.Article {
	latest := service.LatestArticles()
	if len(latest) > trendingCount {
		return latest[:trendingCount]
	}
	return latest
}

// dedupeByTitle keeps the first occurrence of each title,
// case-insensitively. Aggregated feeds routinely syndicate the same
// story under several sources.
func dedupeByTitle(articles []entities.Article) []entities.Article {
	seen := map[string]struct{}{}
	deduped := make([]entities.Article, 0, len(articles))
	for _, article := range articles {
		key := strings.ToLower(article.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, article)
	}
	return deduped
}

package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	// Base URL of the backend news API serving pre-aggregated articles.
	NewsAPIBaseURL = "NEWS_API_BASE_URL"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// Probe port.
	ProbePort = "PROBE_PORT"

	// Boolean; enables the startup fetches that hit live providers.
	Production = "PRODUCTION"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	// Cron tab to the feed crawl.
	FeedCrawlCronTab = "FEED_CRAWL_CRON_TAB"

	// Interval between two price polls. Duration type.
	PricePollInterval = "PRICE_POLL_INTERVAL"

	// Interval between two news refreshes. Duration type.
	NewsRefreshInterval = "NEWS_REFRESH_INTERVAL"

	// User agent sent with feed requests.
	UserAgent = "USER_AGENT"

	// Timeout of a single feed request, in seconds.
	RSSTimeout = "RSS_TIMEOUT"

	defaultNewsAPIBaseURL      = "http://127.0.0.1:8000"
	defaultSqliteURL           = "pocket-news.db"
	defaultProbePort           = 9090
	defaultHealthCrontab       = "* * * * *"
	defaultFeedCrawlCrontab    = "*/5 * * * *"
	defaultPricePollInterval   = 10 * time.Second
	defaultNewsRefreshInterval = 2 * time.Minute
	defaultUserAgent           = "pocket-news/1.0"
	defaultRSSTimeout          = 20
	defaultLogLevel            = zerolog.InfoLevel
	defaultProduction          = false
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		NewsAPIBaseURL:      defaultNewsAPIBaseURL,
		SqliteURL:           defaultSqliteURL,
		ProbePort:           defaultProbePort,
		LogLevel:            defaultLogLevel.String(),
		Production:          defaultProduction,
		HealthCronTab:       defaultHealthCrontab,
		FeedCrawlCronTab:    defaultFeedCrawlCrontab,
		PricePollInterval:   defaultPricePollInterval,
		NewsRefreshInterval: defaultNewsRefreshInterval,
		UserAgent:           defaultUserAgent,
		RSSTimeout:          defaultRSSTimeout,
	}
}

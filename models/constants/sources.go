package constants

const (
	// Fallback cover when no image can be extracted from a feed item.
	DefaultCoverImageURL = "https://placehold.co/600x400/1a1a1a/ffffff?text=Pocket+News"

	FeedTypeRSS = "rss"
)

// Relay endpoints tried in order when a feed refuses a direct fetch.
func GetCorsRelays() []string {
	return []string{
		"https://api.allorigins.win/raw?url=",
		"https://corsproxy.io/?",
		"https://cors-anywhere.herokuapp.com/",
	}
}

type SeedSource struct {
	Name            string
	FeedType        string
	PrimaryURL      string
	BackupURL       string
	RateLimitMillis int64
}

func GetDefaultSources() []SeedSource {
	var sources []SeedSource
	sources = append(sources, SeedSource{Name: "CoinDesk", FeedType: FeedTypeRSS, PrimaryURL: "https://www.coindesk.com/arc/outboundfeeds/rss/", BackupURL: "https://www.coindesk.com/feed", RateLimitMillis: 60000})
	sources = append(sources, SeedSource{Name: "CoinTelegraph", FeedType: FeedTypeRSS, PrimaryURL: "https://cointelegraph.com/rss", BackupURL: "https://cointelegraph.com/feed", RateLimitMillis: 60000})
	sources = append(sources, SeedSource{Name: "CryptoNews", FeedType: FeedTypeRSS, PrimaryURL: "https://cryptonews.com/news/feed", BackupURL: "https://cryptonews.net/feed/", RateLimitMillis: 60000})
	sources = append(sources, SeedSource{Name: "NewsBTC", FeedType: FeedTypeRSS, PrimaryURL: "https://www.newsbtc.com/feed/", BackupURL: "https://www.newsbtc.com/feed", RateLimitMillis: 60000})

	return sources
}

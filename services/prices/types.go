package prices

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"pocket-news/models/constants"
	"pocket-news/models/entities"
	"pocket-news/pkg/observer"
	"pocket-news/pkg/requestqueue"

	"github.com/patrickmn/go-cache"
)

const (
	geckoBaseAPI   = "https://api.coingecko.com/api/v3"
	coincapBaseAPI = "https://api.coincap.io/v2"
	binanceBaseAPI = "https://api.binance.com/api/v3"

	clientHTTPTimeout = 15 * time.Second

	// Per-symbol calls are sequential on purpose, trading latency for
	// politeness toward rate-limited providers.
	coincapCallDelay = 200 * time.Millisecond
	binanceCallDelay = 100 * time.Millisecond

	// After this many consecutive primary failures the aggregator
	// starts directly at the backup provider, re-probing the primary
	// every primaryProbeEvery ticks.
	primaryFailureThreshold = 3
	primaryProbeEvery       = 5
)

var ErrAllProvidersFailed = errors.New("all price providers failed")

type Service interface {
	FetchPrices() (map[string]entities.PriceQuote, error)
	RegisterObserver(o observer.PriceObserver) func()
	LastPrices() map[string]entities.PriceQuote
}

type Impl struct {
	queue    requestqueue.Queue
	client   *http.Client
	notifier observer.PriceNotifier
	tracked  []constants.TrackedCrypto

	geckoBaseURL   string
	coincapBaseURL string
	binanceBaseURL string

	backupDelay   time.Duration
	tertiaryDelay time.Duration

	lastPrices *cache.Cache

	mu              sync.Mutex
	primaryFailures int
	ticks           int
}

type geckoQuote struct {
	USD          float64 `json:"usd"`
	USDChange24h float64 `json:"usd_24h_change"`
}

type coincapResponse struct {
	Data struct {
		PriceUSD         string `json:"priceUsd"`
		ChangePercent24h string `json:"changePercent24Hr"`
	} `json:"data"`
}

type binanceTicker struct {
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
}

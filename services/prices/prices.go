package prices

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pocket-news/models/constants"
	"pocket-news/models/entities"
	"pocket-news/pkg/observer"
	"pocket-news/pkg/requestqueue"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler) (*Impl, error) {
	service := &Impl{
		queue: requestqueue.New(),
		client: &http.Client{
			Timeout: clientHTTPTimeout,
		},
		notifier:       observer.New(),
		tracked:        constants.GetTrackedCryptos(),
		geckoBaseURL:   geckoBaseAPI,
		coincapBaseURL: coincapBaseAPI,
		binanceBaseURL: binanceBaseAPI,
		backupDelay:    coincapCallDelay,
		tertiaryDelay:  binanceCallDelay,
		lastPrices:     cache.New(cache.NoExpiration, 0),
	}

	_, errJob := scheduler.NewJob(
		gocron.DurationJob(viper.GetDuration(constants.PricePollInterval)),
		gocron.NewTask(func() { service.FetchAndNotify() }),
		gocron.WithName("Poll crypto prices"),
	)
	if errJob != nil {
		return nil, errJob
	}

	if viper.GetBool(constants.Production) {
		service.FetchAndNotify()
	}

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.PriceObserver) func() {
	return service.notifier.Register(o)
}

// FetchAndNotify runs one polling tick: fetch, merge into the last-known
// snapshot, fan out. Observers get nil when every provider failed so
// they can render a degraded state.
func (service *Impl) FetchAndNotify() {
	prices, err := service.FetchPrices()
	if err != nil || len(prices) == 0 {
		log.Error().Err(err).Msg("Price tick failed")
		service.notifier.Notify(nil)
		return
	}

	for symbol, quote := range prices {
		service.lastPrices.SetDefault(symbol, quote)
		log.Debug().
			Str(constants.LogSymbol, symbol).
			Str("price", humanize.Commaf(quote.Price)).
			Msg("Price updated")
	}
	service.notifier.Notify(prices)
}

// FetchPrices walks the provider chain: one batched primary call, then
// per-symbol backup calls, then per-pair tertiary calls. A provider
// response lacking a symbol simply omits it from the mapping.
func (service *Impl) FetchPrices() (map[string]entities.PriceQuote, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.ticks++
	tryPrimary := service.primaryFailures < primaryFailureThreshold ||
		service.ticks%primaryProbeEvery == 0

	if tryPrimary {
		prices, err := service.fetchFromCoinGecko()
		if err == nil {
			service.primaryFailures = 0
			return prices, nil
		}
		service.primaryFailures++
		log.Warn().Err(err).
			Str(constants.LogProvider, "coingecko").
			Int(constants.LogAttempt, service.primaryFailures).
			Msg("Primary price provider failed, falling over")
	}

	if prices := service.fetchFromCoinCap(); len(prices) > 0 {
		return prices, nil
	}
	if prices := service.fetchFromBinance(); len(prices) > 0 {
		return prices, nil
	}

	return nil, ErrAllProvidersFailed
}

// LastPrices returns the merged snapshot of the most recent quote seen
// per symbol, across every tick since startup.
func (service *Impl) LastPrices() map[string]entities.PriceQuote {
	snapshot := map[string]entities.PriceQuote{}
	for symbol, item := range service.lastPrices.Items() {
		snapshot[symbol] = item.Object.(entities.PriceQuote)
	}
	return snapshot
}

func (service *Impl) fetchFromCoinGecko() (map[string]entities.PriceQuote, error) {
	ids := make([]string, 0, len(service.tracked))
	for _, crypto := range service.tracked {
		ids = append(ids, crypto.AssetID)
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
		service.geckoBaseURL, strings.Join(ids, ","))
	body, err := service.queue.Enqueue(url, nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko request failed: %w", err)
	}

	var result map[string]geckoQuote
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse coingecko response: %w", err)
	}

	prices := map[string]entities.PriceQuote{}
	for _, crypto := range service.tracked {
		quote, found := result[crypto.AssetID]
		if !found || quote.USD <= 0 {
			continue
		}
		prices[crypto.Symbol] = entities.PriceQuote{
			Symbol:    crypto.Symbol,
			Price:     quote.USD,
			Change24h: quote.USDChange24h,
		}
	}

	return prices, nil
}

// fetchFromCoinCap calls the backup provider once per symbol; a failure
// on one symbol does not abort the others.
func (service *Impl) fetchFromCoinCap() map[string]entities.PriceQuote {
	prices := map[string]entities.PriceQuote{}
	for _, crypto := range service.tracked {
		quote, err := service.fetchCoinCapAsset(crypto)
		if err != nil {
			log.Warn().Err(err).
				Str(constants.LogProvider, "coincap").
				Str(constants.LogSymbol, crypto.Symbol).
				Msg("Backup provider failed for symbol")
		} else if quote.Price > 0 {
			prices[crypto.Symbol] = quote
		}
		time.Sleep(service.backupDelay)
	}
	return prices
}

func (service *Impl) fetchCoinCapAsset(crypto constants.TrackedCrypto) (entities.PriceQuote, error) {
	endpoint := fmt.Sprintf("%s/assets/%s", service.coincapBaseURL, crypto.AssetID)
	resp, err := service.client.Get(endpoint)
	if err != nil {
		return entities.PriceQuote{}, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.PriceQuote{}, fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var result coincapResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return entities.PriceQuote{}, fmt.Errorf("failed to parse response: %w", err)
	}

	price, err := strconv.ParseFloat(result.Data.PriceUSD, 64)
	if err != nil {
		return entities.PriceQuote{}, fmt.Errorf("failed to parse price %q: %w", result.Data.PriceUSD, err)
	}
	change, _ := strconv.ParseFloat(result.Data.ChangePercent24h, 64)

	return entities.PriceQuote{Symbol: crypto.Symbol, Price: price, Change24h: change}, nil
}

// fetchFromBinance is the tertiary provider, addressed by ticker pair
// rather than asset id.
func (service *Impl) fetchFromBinance() map[string]entities.PriceQuote {
	prices := map[string]entities.PriceQuote{}
	for _, crypto := range service.tracked {
		quote, err := service.fetchBinancePair(crypto)
		if err != nil {
			log.Warn().Err(err).
				Str(constants.LogProvider, "binance").
				Str(constants.LogSymbol, crypto.Symbol).
				Msg("Tertiary provider failed for symbol")
		} else if quote.Price > 0 {
			prices[crypto.Symbol] = quote
		}
		time.Sleep(service.tertiaryDelay)
	}
	return prices
}

func (service *Impl) fetchBinancePair(crypto constants.TrackedCrypto) (entities.PriceQuote, error) {
	endpoint := fmt.Sprintf("%s/ticker/24hr?symbol=%s", service.binanceBaseURL, crypto.Pair)
	resp, err := service.client.Get(endpoint)
	if err != nil {
		return entities.PriceQuote{}, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.PriceQuote{}, fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var result binanceTicker
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return entities.PriceQuote{}, fmt.Errorf("failed to parse response: %w", err)
	}

	price, err := strconv.ParseFloat(result.LastPrice, 64)
	if err != nil {
		return entities.PriceQuote{}, fmt.Errorf("failed to parse price %q: %w", result.LastPrice, err)
	}
	change, _ := strconv.ParseFloat(result.PriceChangePercent, 64)

	return entities.PriceQuote{Symbol: crypto.Symbol, Price: price, Change24h: change}, nil
}

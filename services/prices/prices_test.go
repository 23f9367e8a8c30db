package prices

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pocket-news/models/constants"
	"pocket-news/models/entities"
	"pocket-news/pkg/observer"

	"github.com/patrickmn/go-cache"
)

type queueFunc func(url string) ([]byte, error)

func (fn queueFunc) Enqueue(url string, headers map[string]string) ([]byte, error) {
	return fn(url)
}

func newTestService(primary queueFunc) *Impl {
	return &Impl{
		queue:      primary,
		client:     &http.Client{},
		notifier:   observer.New(),
		tracked:    constants.GetTrackedCryptos(),
		lastPrices: cache.New(cache.NoExpiration, 0),
	}
}

const geckoBody = `{
	"bitcoin": {"usd": 65000.5, "usd_24h_change": 2.1},
	"ethereum": {"usd": 3200.25, "usd_24h_change": -1.4},
	"ripple": {"usd": 0.62, "usd_24h_change": 0.3}
}`

func TestFetchPricesPrimary(t *testing.T) {
	service := newTestService(func(url string) ([]byte, error) {
		return []byte(geckoBody), nil
	})

	prices, err := service.FetchPrices()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(prices))
	}
	btc := prices["BTC"]
	if btc.Price != 65000.5 || btc.Change24h != 2.1 {
		t.Errorf("unexpected BTC quote: %+v", btc)
	}
}

func TestPrimaryOmitsMissingSymbols(t *testing.T) {
	service := newTestService(func(url string) ([]byte, error) {
		return []byte(`{"bitcoin": {"usd": 65000.5, "usd_24h_change": 2.1}}`), nil
	})

	prices, err := service.FetchPrices()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(prices))
	}
	if _, found := prices["ETH"]; found {
		t.Error("missing symbol must be absent, not zero-filled")
	}
}

func TestFailoverToBackupWithPartialResult(t *testing.T) {
	backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assets/bitcoin":
			fmt.Fprint(w, `{"data":{"priceUsd":"64890.12","changePercent24Hr":"1.9"}}`)
		case "/assets/ethereum":
			fmt.Fprint(w, `{"data":{"priceUsd":"3190.00","changePercent24Hr":"-1.1"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backup.Close()

	service := newTestService(func(url string) ([]byte, error) {
		return nil, errors.New("primary down")
	})
	service.coincapBaseURL = backup.URL

	prices, err := service.FetchPrices()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("expected exactly 2 quotes, got %d: %v", len(prices), prices)
	}
	if _, found := prices["XRP"]; found {
		t.Error("failed symbol must be omitted, not defaulted")
	}
	if prices["BTC"].Price != 64890.12 {
		t.Errorf("unexpected BTC price: %v", prices["BTC"].Price)
	}
}

func TestFailoverToTertiary(t *testing.T) {
	backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backup.Close()

	tertiary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbol") {
		case "BTCUSDT":
			fmt.Fprint(w, `{"lastPrice":"64750.00","priceChangePercent":"1.7"}`)
		case "ETHUSDT":
			fmt.Fprint(w, `{"lastPrice":"3185.40","priceChangePercent":"-0.9"}`)
		case "XRPUSDT":
			fmt.Fprint(w, `{"lastPrice":"0.61","priceChangePercent":"0.2"}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer tertiary.Close()

	service := newTestService(func(url string) ([]byte, error) {
		return nil, errors.New("primary down")
	})
	service.coincapBaseURL = backup.URL
	service.binanceBaseURL = tertiary.URL

	prices, err := service.FetchPrices()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 3 {
		t.Fatalf("expected 3 quotes from tertiary, got %d", len(prices))
	}
	if prices["XRP"].Price != 0.61 {
		t.Errorf("unexpected XRP price: %v", prices["XRP"].Price)
	}
}

func TestPrimarySkippedAfterConsecutiveFailures(t *testing.T) {
	backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"priceUsd":"64890.12","changePercent24Hr":"1.9"}}`)
	}))
	defer backup.Close()

	primaryCalls := 0
	service := newTestService(func(url string) ([]byte, error) {
		primaryCalls++
		return nil, errors.New("primary down")
	})
	service.coincapBaseURL = backup.URL

	// Ticks 1-3 hit the primary and fail; tick 4 skips it; tick 5 probes.
	for i := 0; i < 5; i++ {
		if _, err := service.FetchPrices(); err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
	}

	if primaryCalls != 4 {
		t.Errorf("primary calls = %d, want 3 failures + 1 probe", primaryCalls)
	}
}

type captureObserver struct {
	updates []map[string]entities.PriceQuote
}

func (c *captureObserver) OnPriceUpdate(prices map[string]entities.PriceQuote) {
	c.updates = append(c.updates, prices)
}

func TestFetchAndNotify(t *testing.T) {
	service := newTestService(func(url string) ([]byte, error) {
		return []byte(geckoBody), nil
	})
	capture := &captureObserver{}
	unsubscribe := service.RegisterObserver(capture)
	defer unsubscribe()

	service.FetchAndNotify()

	if len(capture.updates) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(capture.updates))
	}
	if len(capture.updates[0]) != 3 {
		t.Errorf("expected full quote mapping, got %v", capture.updates[0])
	}

	snapshot := service.LastPrices()
	if snapshot["ETH"].Price != 3200.25 {
		t.Errorf("snapshot not merged: %v", snapshot)
	}
}

func TestFetchAndNotifyDegraded(t *testing.T) {
	service := newTestService(func(url string) ([]byte, error) {
		return nil, errors.New("primary down")
	})
	// Backup and tertiary point nowhere usable.
	service.coincapBaseURL = "http://127.0.0.1:0"
	service.binanceBaseURL = "http://127.0.0.1:0"

	capture := &captureObserver{}
	defer service.RegisterObserver(capture)()

	service.FetchAndNotify()

	if len(capture.updates) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(capture.updates))
	}
	if capture.updates[0] != nil {
		t.Errorf("degraded tick should deliver nil, got %v", capture.updates[0])
	}
}

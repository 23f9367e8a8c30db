package observer

import (
	"testing"

	"pocket-news/models/entities"
)

type countingObserver struct {
	calls int
	last  map[string]entities.PriceQuote
}

func (c *countingObserver) OnPriceUpdate(prices map[string]entities.PriceQuote) {
	c.calls++
	c.last = prices
}

func TestNotifyReachesEveryObserverOnce(t *testing.T) {
	notifier := New()
	first := &countingObserver{}
	second := &countingObserver{}
	notifier.Register(first)
	notifier.Register(second)

	prices := map[string]entities.PriceQuote{"BTC": {Symbol: "BTC", Price: 65000}}
	notifier.Notify(prices)

	if first.calls != 1 || second.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", first.calls, second.calls)
	}
	if first.last["BTC"].Price != 65000 {
		t.Errorf("observer payload = %v", first.last)
	}
}

func TestNilPayloadDelivered(t *testing.T) {
	notifier := New()
	obs := &countingObserver{last: map[string]entities.PriceQuote{}}
	notifier.Register(obs)

	notifier.Notify(nil)

	if obs.calls != 1 {
		t.Fatalf("calls = %d, want 1", obs.calls)
	}
	if obs.last != nil {
		t.Error("degraded tick should deliver nil payload")
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	notifier := New()
	obs := &countingObserver{}
	unsubscribe := notifier.Register(obs)

	unsubscribe()
	unsubscribe() // harmless second call

	notifier.Notify(map[string]entities.PriceQuote{})
	if obs.calls != 0 {
		t.Errorf("unsubscribed observer notified %d times", obs.calls)
	}
}

func TestSameObserverRegisteredTwice(t *testing.T) {
	notifier := New()
	obs := &countingObserver{}
	notifier.Register(obs)
	stop := notifier.Register(obs)

	notifier.Notify(map[string]entities.PriceQuote{})
	if obs.calls != 2 {
		t.Errorf("calls = %d, want one per registration", obs.calls)
	}

	stop()
	notifier.Notify(map[string]entities.PriceQuote{})
	if obs.calls != 3 {
		t.Errorf("calls = %d, want remaining registration still active", obs.calls)
	}
}

package requestqueue

import (
	"errors"
	"net/http"
	"sync"
	"time"
)

const (
	baseFetchInterval = 5 * time.Second
	maxFetchInterval  = 30 * time.Second
	retryDelay        = 2 * time.Second
	maxRetries        = 5
	clientHTTPTimeout = 15 * time.Second
)

var ErrRateLimited = errors.New("rate limit exceeded")

// Queue serializes outbound calls to one logical endpoint. One instance
// per endpoint; throttle and retry state are shared by every request
// going through the same instance.
type Queue interface {
	Enqueue(url string, headers map[string]string) ([]byte, error)
}

type result struct {
	body []byte
	err  error
}

type queuedRequest struct {
	url     string
	headers map[string]string
	done    chan result
}

type Impl struct {
	client *http.Client

	mu            sync.Mutex
	pending       []*queuedRequest
	processing    bool
	minInterval   time.Duration
	baseInterval  time.Duration
	maxInterval   time.Duration
	retryInterval time.Duration
	retryBudget   int
	retryCount    int
	lastDispatch  time.Time
}

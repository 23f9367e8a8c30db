package requestqueue

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"pocket-news/models/constants"

	"github.com/rs/zerolog/log"
)

func New() *Impl {
	return &Impl{
		client: &http.Client{
			Timeout: clientHTTPTimeout,
		},
		minInterval:   baseFetchInterval,
		baseInterval:  baseFetchInterval,
		maxInterval:   maxFetchInterval,
		retryInterval: retryDelay,
		retryBudget:   maxRetries,
	}
}

// Enqueue appends the request to the queue and blocks until it settles.
// A request only fails after the shared retry budget is exhausted.
func (queue *Impl) Enqueue(url string, headers map[string]string) ([]byte, error) {
	request := &queuedRequest{
		url:     url,
		headers: headers,
		done:    make(chan result, 1),
	}

	queue.mu.Lock()
	queue.pending = append(queue.pending, request)
	if !queue.processing {
		queue.processing = true
		go queue.processQueue()
	}
	queue.mu.Unlock()

	settled := <-request.done
	return settled.body, settled.err
}

// processQueue is the single-flight loop: at most one request is in
// flight at a time, and a failed request is put back at the front so it
// retries before anything newer.
func (queue *Impl) processQueue() {
	for {
		queue.mu.Lock()
		if len(queue.pending) == 0 {
			queue.processing = false
			queue.mu.Unlock()
			return
		}
		request := queue.pending[0]
		queue.pending = queue.pending[1:]
		wait := queue.minInterval - time.Since(queue.lastDispatch)
		queue.mu.Unlock()

		if wait > 0 {
			time.Sleep(wait)
		}

		body, err := queue.dispatch(request)
		if err == nil {
			request.done <- result{body: body}
			continue
		}

		queue.mu.Lock()
		if queue.retryCount < queue.retryBudget {
			queue.retryCount++
			attempt := queue.retryCount
			backoff := time.Duration(attempt) * queue.retryInterval
			queue.pending = append([]*queuedRequest{request}, queue.pending...)
			queue.mu.Unlock()

			log.Warn().Err(err).
				Int(constants.LogAttempt, attempt).
				Dur(constants.LogInterval, backoff).
				Msg("Request failed, requeued at front")
			time.Sleep(backoff)
			continue
		}
		queue.mu.Unlock()

		log.Error().Err(err).Str("url", request.url).Msg("Retry budget exhausted")
		request.done <- result{err: err}
	}
}

func (queue *Impl) dispatch(request *queuedRequest) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, request.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for name, value := range request.headers {
		req.Header.Set(name, value)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := queue.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		queue.escalateThrottle()
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	queue.mu.Lock()
	queue.minInterval = queue.baseInterval
	queue.retryCount = 0
	queue.lastDispatch = time.Now()
	queue.mu.Unlock()

	return body, nil
}

// escalateThrottle doubles the shared inter-request interval, capped at
// maxFetchInterval. Every queued request slows down, not just the one
// that hit the limit.
func (queue *Impl) escalateThrottle() {
	queue.mu.Lock()
	queue.minInterval = min(queue.minInterval*2, queue.maxInterval)
	escalated := queue.minInterval
	queue.mu.Unlock()

	log.Warn().Dur(constants.LogInterval, escalated).Msg("Rate limit hit, throttling queue")
}

// MinInterval reports the current shared throttle interval.
func (queue *Impl) MinInterval() time.Duration {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return queue.minInterval
}

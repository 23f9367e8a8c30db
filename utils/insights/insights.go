package insights

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pocket-news/models/constants"
	"pocket-news/models/entities"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Snapshot is the operational view exposed on /status: the last-known
// quotes and how much aggregated news is currently held.
type Snapshot struct {
	Prices       map[string]entities.PriceQuote `json:"prices"`
	ArticleCount int                            `json:"articleCount"`
	Started      string                         `json:"started"`
}

type Probes interface {
	ListenAndServe()
}

type Impl struct {
	port      int
	startedAt time.Time
	isReady   func() bool
	snapshot  func() Snapshot
}

func NewProbes(isReady func() bool, snapshot func() Snapshot) *Impl {
	return &Impl{
		port:      viper.GetInt(constants.ProbePort),
		startedAt: time.Now(),
		isReady:   isReady,
		snapshot:  snapshot,
	}
}

func (probes *Impl) ListenAndServe() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", probes.healthHandler)
	mux.HandleFunc("/ready", probes.readyHandler)
	mux.HandleFunc("/status", probes.statusHandler)

	go func() {
		addr := fmt.Sprintf(":%d", probes.port)
		log.Info().Str("addr", addr).Msg("Probes listening")
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error().Err(err).Msg("Probes server stopped")
		}
	}()
}

func (probes *Impl) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "ok",
		"started": humanize.Time(probes.startedAt),
	})
}

func (probes *Impl) readyHandler(w http.ResponseWriter, r *http.Request) {
	if probes.isReady != nil && !probes.isReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{"status": "ready"})
}

func (probes *Impl) statusHandler(w http.ResponseWriter, r *http.Request) {
	if probes.snapshot == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	snapshot := probes.snapshot()
	snapshot.Started = humanize.Time(probes.startedAt)
	writeJSON(w, snapshot)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode probe response")
	}
}

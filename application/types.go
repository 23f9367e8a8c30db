package application

import (
	"pocket-news/services/feeds"
	"pocket-news/services/health"
	"pocket-news/services/news"
	"pocket-news/services/prices"
	"pocket-news/utils/databases"
	"pocket-news/utils/insights"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run()
	Shutdown()
}

type Impl struct {
	scheduler     gocron.Scheduler
	probes        insights.Probes
	healthService health.Service
	pricesService prices.Service
	newsService   news.Service
	feedsService  feeds.Service
	db            databases.SqlConnection
}

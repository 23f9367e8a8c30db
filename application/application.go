package application

import (
	"pocket-news/models/entities"
	sourcesRepo "pocket-news/repositories/sources"
	"pocket-news/services/feeds"
	"pocket-news/services/health"
	"pocket-news/services/news"
	"pocket-news/services/prices"
	"pocket-news/utils/databases"
	"pocket-news/utils/insights"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

func New() (*Impl, error) {
	db := databases.New()
	if errDB := db.Run(); errDB != nil {
		return nil, errDB
	}

	errMigration := db.GetDB().AutoMigrate(&entities.NewsSource{})
	if errMigration != nil {
		return nil, errMigration
	}

	scheduler, errScheduler := gocron.NewScheduler()
	if errScheduler != nil {
		return nil, errScheduler
	}

	// Repositories
	sourceRepo := sourcesRepo.New(db)

	pricesService, errPrices := prices.New(scheduler)
	if errPrices != nil {
		return nil, errPrices
	}

	newsService, errNews := news.New(scheduler)
	if errNews != nil {
		return nil, errNews
	}

	feedsService, errFeeds := feeds.New(sourceRepo, scheduler)
	if errFeeds != nil {
		return nil, errFeeds
	}

	healthService, errHealth := health.New(scheduler)
	if errHealth != nil {
		return nil, errHealth
	}

	probes := insights.NewProbes(db.IsConnected, func() insights.Snapshot {
		return insights.Snapshot{
			Prices:       pricesService.LastPrices(),
			ArticleCount: len(newsService.LatestArticles()),
		}
	})

	return &Impl{
		scheduler:     scheduler,
		probes:        probes,
		pricesService: pricesService,
		newsService:   newsService,
		feedsService:  feedsService,
		healthService: healthService,
		db:            db,
	}, nil
}

func (app *Impl) Run() {
	app.scheduler.Start()
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	app.probes.ListenAndServe()
}

func (app *Impl) Shutdown() {
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}

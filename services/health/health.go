package health

import (
	"time"

	"pocket-news/models/constants"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Service interface {
}

type Impl struct {
	startedAt time.Time
}

func New(scheduler gocron.Scheduler) (*Impl, error) {
	service := Impl{startedAt: time.Now()}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.HealthCronTab), false),
		gocron.NewTask(func() { service.echo() }),
		gocron.WithName("Check app running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) echo() {
	log.Info().Str("up", humanize.Time(service.startedAt)).Msg("Application is running")
}

package players

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const refreshTimeout = 2 * time.Minute

// Refresher reloads the player directory once a week
type Refresher struct {
	s      gocron.Scheduler
	cache  *Cache
	day    time.Weekday
	hour   uint
	logger *logrus.Logger
}

// NewRefresher creates a weekly refresh job for cache at the given weekday and hour (UTC)
func NewRefresher(cache *Cache, day time.Weekday, hour uint, logger *logrus.Logger) (*Refresher, error) {
	if hour > 23 {
		return nil, errors.Newf("refresh hour %d out of range", hour)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}

	return &Refresher{
		s:      s,
		cache:  cache,
		day:    day,
		hour:   hour,
		logger: logger,
	}, nil
}

// Start registers the weekly job and starts the scheduler
func (r *Refresher) Start() error {
	_, err := r.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(r.day), gocron.NewAtTimes(gocron.NewAtTime(r.hour, 0, 0))),
		gocron.NewTask(r.refresh),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create player refresh job")
	}

	r.logger.WithFields(logrus.Fields{
		"day":  r.day.String(),
		"hour": r.hour,
	}).Info("Player directory refresh scheduled")

	r.s.Start()
	return nil
}

// Stop shuts the scheduler down
func (r *Refresher) Stop() error {
	return r.s.Shutdown()
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if _, err := r.cache.Refresh(ctx); err != nil {
		r.logger.WithError(err).Error("Failed to refresh player directory")
	}
}

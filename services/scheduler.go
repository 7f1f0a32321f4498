package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartGoalRefreshScheduler runs the same refresh operation the goal-list
// endpoint uses, on a timer, so expired goals roll over even for users who
// never open the app. Returns the scheduler so main can shut it down.
func StartGoalRefreshScheduler(goalService *GoalService, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			goalService.RefreshAllUsers(ctx)
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	log.Printf("Goal refresh scheduler started (every %s)", interval)

	return sched, nil
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRevalidation schedules a background revalidation of the active tab
// every interval. It plays the part a screen regaining focus plays on a
// phone: the list on screen is refreshed without being blanked.
func (a *App) StartRevalidation(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil || !a.isLoggedIn() {
				return
			}
			if err := a.ctrl.Focus(ctx); err != nil {
				a.log.Debug(ctx, "background revalidation failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule revalidation: %w", err)
	}

	scheduler.Start()
	return scheduler, nil
}

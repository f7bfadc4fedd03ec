package jobs

import (
	"context"
	"time"

	"campus-events-backend/internal/logger"
)

const jobTimeout = 30 * time.Second

// ActivateDueEvents moves every APPROVED event whose start time has arrived
// to LIVE. The transition is a bulk conditional update, so it composes
// safely with concurrent administrative transitions on the same events.
func (jr *JobRunner) ActivateDueEvents() {
	jr.runWithRecovery("activate-due-events", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := jr.store.EventRepository.ActivateDue(ctx, time.Now())
		if err != nil {
			logger.Error("activate due events failed", "error", err)
			return
		}
		if n > 0 {
			logger.Info("events activated", "count", n)
		}
	})
}

// CloseEndedEvents moves every LIVE event whose end time has passed to
// CLOSED.
func (jr *JobRunner) CloseEndedEvents() {
	jr.runWithRecovery("close-ended-events", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := jr.store.EventRepository.CloseEnded(ctx, time.Now())
		if err != nil {
			logger.Error("close ended events failed", "error", err)
			return
		}
		if n > 0 {
			logger.Info("events closed", "count", n)
		}
	})
}

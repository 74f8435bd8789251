package taskstore

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper clears old completed history entries on a cron schedule
type Sweeper struct {
	store     *Store
	retention time.Duration
	schedule  cron.Schedule
}

// NewSweeper parses the cron expression and retention age
func NewSweeper(store *Store, cronExpr, retentionAge string) (*Sweeper, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, err
	}
	retention, err := time.ParseDuration(retentionAge)
	if err != nil {
		return nil, err
	}
	return &Sweeper{store: store, retention: retention, schedule: schedule}, nil
}

// Run sweeps at each scheduled time until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) error {
	for {
		next := s.schedule.Next(time.Now())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(next)):
			removed, err := s.store.Sweep(s.retention)
			if err != nil {
				log.Printf("history sweep failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("history sweep removed %d entries", removed)
			}
		}
	}
}

package notifications

import (
	"context"
	"time"

	"moneymap/internal/logger"
)

// Sweeper periodically runs the budget alert check for every opted-in user.
type Sweeper struct {
	users        UserReader
	checker      *Checker
	interval     time.Duration
	initialDelay time.Duration
}

// NewSweeper creates a Sweeper that fires once after initialDelay and then
// every interval.
func NewSweeper(users UserReader, checker *Checker, interval, initialDelay time.Duration) *Sweeper {
	return &Sweeper{
		users:        users,
		checker:      checker,
		interval:     interval,
		initialDelay: initialDelay,
	}
}

// Start launches the sweep loop in a goroutine. The loop stops when ctx is
// canceled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	log := logger.Get()
	log.Infow("budget alert sweeper started",
		"interval", s.interval,
		"initial_delay", s.initialDelay,
	)

	initial := time.NewTimer(s.initialDelay)
	defer initial.Stop()
	select {
	case <-ctx.Done():
		return
	case <-initial.C:
	}
	s.Sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Infow("budget alert sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one pass over all opted-in users. A failure for one user is
// logged and does not stop the sweep.
func (s *Sweeper) Sweep() {
	log := logger.Get()

	users, err := s.users.ListUsersWithBudgetAlerts()
	if err != nil {
		log.Errorw("budget alert sweep failed to list users", "error", err)
		return
	}

	for i := range users {
		if err := s.checker.CheckUser(&users[i]); err != nil {
			log.Errorw("budget alert sweep failed for user",
				"user_id", users[i].ID,
				"error", err,
			)
		}
	}
	log.Infow("budget alert sweep completed", "users", len(users))
}

package cardroom

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// defaults for the sweeper
const (
	DefaultSweepInterval = time.Minute
	DefaultTurnTimeout   = 20 * time.Second
)

// errSweepNotDue aborts a sweep update without publishing anything
var errSweepNotDue = errors.New("turn has not timed out")

// Sweeper periodically forces a fold for any seat that has held the turn past
// the timeout. It shares the store's per-table update path with player
// actions, so a fold and an action can never commit over each other.
type Sweeper struct {
	store    *Store
	interval time.Duration
	timeout  time.Duration
	logger   logrus.FieldLogger
}

// NewSweeper returns a sweeper over the store's tables. Zero durations fall
// back to the defaults.
func NewSweeper(store *Store, interval, timeout time.Duration, logger logrus.FieldLogger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	if timeout <= 0 {
		timeout = DefaultTurnTimeout
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Sweeper{
		store:    store,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run sweeps on a fixed cadence until the context is canceled
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep makes one pass over every table in a betting street and folds any
// seat past the timeout. Returns the number of seats folded.
func (s *Sweeper) Sweep(ctx context.Context) int {
	folded := 0

	for _, id := range s.store.BettingTables() {
		var seatNumber int
		_, err := s.store.Update(ctx, id, 0, func(t *Table) error {
			// revalidate under the table's lock: the seat may have acted, or
			// the hand may have moved on, since BettingTables looked
			var err error
			seatNumber, err = t.timeoutFold(s.timeout)
			return err
		})

		if err != nil {
			if !errors.Is(err, errSweepNotDue) {
				s.logger.WithError(err).WithField("table", id).Error("could not sweep table")
			}
			continue
		}

		folded++
		s.logger.WithFields(logrus.Fields{
			"table": id,
			"seat":  seatNumber,
		}).Info("folded seat on timeout")
	}

	return folded
}

// timeoutFold forces the seat on the clock to fold through the same
// transition a voluntary fold takes. The acting-since check runs here, under
// the table lock, so a seat that already acted is never folded for a turn it
// no longer holds.
func (t *Table) timeoutFold(timeout time.Duration) (int, error) {
	if !t.Stage.IsBetting() || t.SeatToAct == 0 {
		return 0, errSweepNotDue
	}

	if t.ActingSince.IsZero() || time.Since(t.ActingSince) < timeout {
		return 0, errSweepNotDue
	}

	seat := t.seat(t.SeatToAct)
	if seat == nil || !seat.canAct() {
		return 0, errSweepNotDue
	}

	return seat.Number, t.act(seat, ActionFold, 0)
}

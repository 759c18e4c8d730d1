package cardroom

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sweeperStore(t *testing.T) (*Store, string) {
	t.Helper()

	rigDeck(t, "13c,12c,14c,13d,12d,14d,2c,7d,9h,5s,3h")

	store := NewStore(nil)
	_, err := store.CreateTable(context.Background(), "t", Holdem, 5, 10, 6, 3)
	assert.NoError(t, err)

	_, err = store.Update(context.Background(), "t", 0, func(table *Table) error {
		if err := table.Join(1, 101, 1000, ""); err != nil {
			return err
		}
		if err := table.Join(2, 102, 1000, ""); err != nil {
			return err
		}
		if err := table.Join(3, 103, 1000, ""); err != nil {
			return err
		}
		return table.StartHand()
	})
	assert.NoError(t, err)

	return store, "t"
}

func TestSweeper_FoldsExpiredTurn(t *testing.T) {
	store, id := sweeperStore(t)
	sweeper := NewSweeper(store, 0, 0, nil)

	// fresh turn: nothing is due
	assert.Equal(t, 0, sweeper.Sweep(context.Background()))

	_, err := store.Update(context.Background(), id, 0, func(table *Table) error {
		table.ActingSince = time.Now().Add(-time.Minute)
		return nil
	})
	assert.NoError(t, err)

	assert.Equal(t, 1, sweeper.Sweep(context.Background()))

	snapshot, err := store.View(context.Background(), id, 0)
	assert.NoError(t, err)
	assert.True(t, snapshot.Seats[0].Folded)
	assert.Equal(t, 2, snapshot.SeatToAct)

	// the fold refreshed acting-since, so the same turn is not swept twice
	assert.Equal(t, 0, sweeper.Sweep(context.Background()))
}

func TestSweeper_SkipsIdleTables(t *testing.T) {
	store := NewStore(nil)
	_, err := store.CreateTable(context.Background(), "idle", Holdem, 5, 10, 6, 2)
	assert.NoError(t, err)

	sweeper := NewSweeper(store, 0, 0, nil)
	assert.Equal(t, 0, sweeper.Sweep(context.Background()))
}

func TestSweeper_Run_StopsOnCancel(t *testing.T) {
	store := NewStore(nil)
	sweeper := NewSweeper(store, time.Millisecond, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("expected Run to return after cancel")
	}
}

func TestTable_TimeoutFold_Revalidates(t *testing.T) {
	store, id := sweeperStore(t)

	_, err := store.Update(context.Background(), id, 0, func(table *Table) error {
		table.ActingSince = time.Now().Add(-time.Minute)

		// the seat acts before the sweeper gets the lock
		return table.PlayerAction(101, ActionCall, 0)
	})
	assert.NoError(t, err)

	sweeper := NewSweeper(store, 0, 0, nil)
	assert.Equal(t, 0, sweeper.Sweep(context.Background()))

	snapshot, err := store.View(context.Background(), id, 0)
	assert.NoError(t, err)
	assert.False(t, snapshot.Seats[0].Folded)
}

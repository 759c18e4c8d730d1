package db

import (
	"context"
	"database/sql"
	"time"

	"clubsocial-server/pkg/cardroom"
)

// PostgresRecorder persists table state as one row per table plus one row per
// seat. Save replaces the whole aggregate so a half-written hand can never be
// read back.
type PostgresRecorder struct {
	db *sql.DB
}

// NewPostgresRecorder returns a recorder over the database
func NewPostgresRecorder(db *sql.DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

var _ cardroom.Recorder = (*PostgresRecorder)(nil)

const upsertTableSQL = `
INSERT INTO tables (id, variant, small_blind, big_blind, min_players, seat_count, stage,
                    dealer_seat, seat_to_act, pot, community, hand_id, acting_since, deck_remaining, updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, (NOW() AT TIME ZONE 'utc'))
ON CONFLICT (id) DO UPDATE
SET stage          = EXCLUDED.stage,
    dealer_seat    = EXCLUDED.dealer_seat,
    seat_to_act    = EXCLUDED.seat_to_act,
    pot            = EXCLUDED.pot,
    community      = EXCLUDED.community,
    hand_id        = EXCLUDED.hand_id,
    acting_since   = EXCLUDED.acting_since,
    deck_remaining = EXCLUDED.deck_remaining,
    updated        = (NOW() AT TIME ZONE 'utc')`

const upsertSeatSQL = `
INSERT INTO seats (table_id, seat_number, player_id, display_name, chips, street_bet,
                   folded, all_in, in_hand, acted, optioned, hole_cards, revealed, last_action_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (table_id, seat_number) DO UPDATE
SET player_id      = EXCLUDED.player_id,
    display_name   = EXCLUDED.display_name,
    chips          = EXCLUDED.chips,
    street_bet     = EXCLUDED.street_bet,
    folded         = EXCLUDED.folded,
    all_in         = EXCLUDED.all_in,
    in_hand        = EXCLUDED.in_hand,
    acted          = EXCLUDED.acted,
    optioned       = EXCLUDED.optioned,
    hole_cards     = EXCLUDED.hole_cards,
    revealed       = EXCLUDED.revealed,
    last_action_at = EXCLUDED.last_action_at`

// Save writes the record in a single transaction
func (p *PostgresRecorder) Save(ctx context.Context, record *cardroom.Record) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, upsertTableSQL, record.ID, record.Variant,
		record.SmallBlind, record.BigBlind, record.MinPlayers, record.SeatCount,
		record.Stage, record.DealerSeat, record.SeatToAct, record.Pot, record.Community,
		record.HandID, nullableTime(record.ActingSince), record.DeckRemaining); err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, seat := range record.Seats {
		if _, err := tx.ExecContext(ctx, upsertSeatSQL, record.ID, seat.SeatNumber,
			seat.PlayerID, seat.DisplayName, seat.Chips, seat.StreetBet, seat.Folded,
			seat.AllIn, seat.InHand, seat.Acted, seat.Optioned, seat.HoleCards,
			seat.Revealed, nullableTime(seat.LastActionAt)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// LoadTables reads every persisted table for restoring the store at boot
func (p *PostgresRecorder) LoadTables(ctx context.Context) ([]*cardroom.Record, error) {
	const tablesSQL = `
SELECT id, variant, small_blind, big_blind, min_players, seat_count, stage,
       dealer_seat, seat_to_act, pot, community, hand_id, acting_since, deck_remaining
FROM tables
ORDER BY id`

	rows, err := p.db.QueryContext(ctx, tablesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*cardroom.Record
	for rows.Next() {
		record, err := tableRecordByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, record := range records {
		if err := p.loadSeats(ctx, record); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func (p *PostgresRecorder) loadSeats(ctx context.Context, record *cardroom.Record) error {
	const seatsSQL = `
SELECT seat_number, player_id, display_name, chips, street_bet, folded, all_in,
       in_hand, acted, optioned, hole_cards, revealed, last_action_at
FROM seats
WHERE table_id = $1
ORDER BY seat_number`

	rows, err := p.db.QueryContext(ctx, seatsSQL, record.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var seat cardroom.SeatRecord
		var lastActionAt sql.NullTime
		if err := rows.Scan(&seat.SeatNumber, &seat.PlayerID, &seat.DisplayName,
			&seat.Chips, &seat.StreetBet, &seat.Folded, &seat.AllIn, &seat.InHand,
			&seat.Acted, &seat.Optioned, &seat.HoleCards, &seat.Revealed, &lastActionAt); err != nil {
			return err
		}

		seat.LastActionAt = lastActionAt.Time
		record.Seats = append(record.Seats, &seat)
	}

	return rows.Err()
}

func tableRecordByRow(row Scanner) (*cardroom.Record, error) {
	var record cardroom.Record
	var actingSince sql.NullTime
	if err := row.Scan(&record.ID, &record.Variant, &record.SmallBlind, &record.BigBlind,
		&record.MinPlayers, &record.SeatCount, &record.Stage, &record.DealerSeat,
		&record.SeatToAct, &record.Pot, &record.Community, &record.HandID,
		&actingSince, &record.DeckRemaining); err != nil {
		return nil, err
	}

	record.ActingSince = actingSince.Time
	return &record, nil
}

func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

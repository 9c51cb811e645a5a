package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/clemux/holdem-suite/internal/parser"
	"github.com/clemux/holdem-suite/internal/summaryparser"
)

// SQLiteRepository is the Repository implementation backed by a local
// SQLite database opened in WAL mode via the pure-Go modernc.org/sqlite
// driver.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if necessary) the database at
// dbPath, enables WAL mode, and applies pending migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func nullAmount(a *parser.Amount) any {
	if a == nil {
		return nil
	}
	return encodeAmount(*a)
}

func nullCard(c *parser.Card) any {
	if c == nil {
		return nil
	}
	return encodeCard(*c)
}

func nullUint64(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

// InsertHands implements the insert-or-ignore-skip-children algorithm of
// SPEC_FULL §4.5: hands already present are left untouched, including
// their seats and actions.
func (r *SQLiteRepository) InsertHands(ctx context.Context, hands []parser.Hand) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	var pendingActions []StoredAction

	const insertHand = `INSERT OR IGNORE INTO hands(
		id, hole_card_1, hole_card_2, tournament_id, cash_game_name, datetime,
		button, max_players, hero, ante, small_blind, big_blind, pot, rake,
		flop1, flop2, flop3, turn, river
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	const insertSeat = `INSERT OR IGNORE INTO seats(
		hand_id, player_name, seat_number, stack, bounty, card1, card2
	) VALUES(?, ?, ?, ?, ?, ?, ?)`

	for _, h := range hands {
		sh, seats, actions := flattenHand(h)

		res, err := tx.ExecContext(ctx, insertHand,
			sh.ID, encodeCard(sh.HoleCard1), encodeCard(sh.HoleCard2),
			nullUint64(sh.TournamentID), nullString(sh.CashGameName), sh.Datetime,
			sh.Button, sh.MaxPlayers, sh.Hero, nullAmount(sh.Ante),
			encodeAmount(sh.SmallBlind), encodeAmount(sh.BigBlind), encodeAmount(sh.Pot),
			nullAmount(sh.Rake), nullCard(sh.Flop1), nullCard(sh.Flop2), nullCard(sh.Flop3),
			nullCard(sh.Turn), nullCard(sh.River),
		)
		if err != nil {
			return 0, fmt.Errorf("insert hand %s: %w", sh.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("insert hand %s: %w", sh.ID, err)
		}
		if n == 0 {
			continue
		}
		inserted++

		for _, s := range seats {
			if _, err := tx.ExecContext(ctx, insertSeat,
				s.HandID, s.PlayerName, s.SeatNumber, encodeAmount(s.Stack),
				nullAmount(s.Bounty), nullCard(s.Card1), nullCard(s.Card2),
			); err != nil {
				return 0, fmt.Errorf("insert seat %s/%d: %w", s.HandID, s.SeatNumber, err)
			}
		}
		pendingActions = append(pendingActions, actions...)
	}

	const insertAction = `INSERT OR IGNORE INTO actions(
		hand_id, player_name, action_type, amount, is_all_in, street
	) VALUES(?, ?, ?, ?, ?, ?)`
	for _, a := range pendingActions {
		if _, err := tx.ExecContext(ctx, insertAction,
			a.HandID, a.PlayerName, a.ActionType, nullAmount(a.Amount), a.IsAllIn, a.Street,
		); err != nil {
			return 0, fmt.Errorf("insert action for hand %s: %w", a.HandID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *SQLiteRepository) InsertSummary(ctx context.Context, s summaryparser.TournamentSummary) (bool, error) {
	const q = `INSERT OR IGNORE INTO summaries(
		id, name, buyin, date, play_time, entries, mode, tournament_type, speed, finish_place, won
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var won any
	if s.Won != nil {
		won = s.Won.String()
	}
	res, err := r.db.ExecContext(ctx, q,
		s.ID, s.Name, s.BuyIn.BuyIn.String(), s.StartDate, s.PlayTime, s.Entries,
		s.Mode, tournamentTypeText(s.TournamentType), s.Speed, s.FinishPlace, won,
	)
	if err != nil {
		return false, fmt.Errorf("insert summary %d: %w", s.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert summary %d: %w", s.ID, err)
	}
	return n > 0, nil
}

func tournamentTypeText(t summaryparser.TournamentType) string {
	switch t.Kind {
	case summaryparser.Sitngo:
		return "sitngo"
	case summaryparser.Mtt:
		return "tt"
	case summaryparser.Knockout:
		return "knockout"
	default:
		return t.Unknown
	}
}

const selectHandColumns = `id, hole_card_1, hole_card_2, tournament_id, cash_game_name, datetime,
	button, max_players, hero, ante, small_blind, big_blind, pot, rake,
	flop1, flop2, flop3, turn, river`

func scanHand(row interface{ Scan(...any) error }) (StoredHand, error) {
	var sh StoredHand
	var hc1, hc2, smallBlind, bigBlind, pot string
	var ante, rake, flop1, flop2, flop3, turn, river sql.NullString
	var tournamentID sql.NullInt64
	var cashGameName sql.NullString

	if err := row.Scan(
		&sh.ID, &hc1, &hc2, &tournamentID, &cashGameName, &sh.Datetime,
		&sh.Button, &sh.MaxPlayers, &sh.Hero, &ante, &smallBlind, &bigBlind, &pot, &rake,
		&flop1, &flop2, &flop3, &turn, &river,
	); err != nil {
		return StoredHand{}, err
	}

	var err error
	if sh.HoleCard1, err = decodeCard(hc1); err != nil {
		return StoredHand{}, err
	}
	if sh.HoleCard2, err = decodeCard(hc2); err != nil {
		return StoredHand{}, err
	}
	if sh.SmallBlind, err = decodeAmount(smallBlind); err != nil {
		return StoredHand{}, err
	}
	if sh.BigBlind, err = decodeAmount(bigBlind); err != nil {
		return StoredHand{}, err
	}
	if sh.Pot, err = decodeAmount(pot); err != nil {
		return StoredHand{}, err
	}
	if tournamentID.Valid {
		v := uint64(tournamentID.Int64)
		sh.TournamentID = &v
	}
	if cashGameName.Valid {
		sh.CashGameName = &cashGameName.String
	}
	if ante.Valid {
		a, err := decodeAmount(ante.String)
		if err != nil {
			return StoredHand{}, err
		}
		sh.Ante = &a
	}
	if rake.Valid {
		a, err := decodeAmount(rake.String)
		if err != nil {
			return StoredHand{}, err
		}
		sh.Rake = &a
	}
	for _, p := range []struct {
		ns  sql.NullString
		dst **parser.Card
	}{{flop1, &sh.Flop1}, {flop2, &sh.Flop2}, {flop3, &sh.Flop3}, {turn, &sh.Turn}, {river, &sh.River}} {
		if !p.ns.Valid {
			continue
		}
		c, err := decodeCard(p.ns.String)
		if err != nil {
			return StoredHand{}, err
		}
		*p.dst = &c
	}
	return sh, nil
}

func (r *SQLiteRepository) queryHands(ctx context.Context, where string, args ...any) ([]StoredHand, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectHandColumns+` FROM hands`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query hands: %w", err)
	}
	defer rows.Close()

	var out []StoredHand
	for rows.Next() {
		sh, err := scanHand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hand: %w", err)
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetHands(ctx context.Context) ([]StoredHand, error) {
	return r.queryHands(ctx, ` ORDER BY datetime ASC`)
}

func (r *SQLiteRepository) GetHandsForTournament(ctx context.Context, tournamentID uint64) ([]StoredHand, error) {
	return r.queryHands(ctx, ` WHERE tournament_id = ? ORDER BY datetime ASC`, tournamentID)
}

func (r *SQLiteRepository) GetHandsForPlayer(ctx context.Context, playerName string) ([]HandWithActions, error) {
	hands, err := r.queryHands(ctx, ` WHERE id IN (SELECT hand_id FROM seats WHERE player_name = ?) ORDER BY datetime ASC`, playerName)
	if err != nil {
		return nil, err
	}
	out := make([]HandWithActions, 0, len(hands))
	for _, h := range hands {
		actions, err := r.GetActions(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, HandWithActions{Hand: h, Actions: actions})
	}
	return out, nil
}

func (r *SQLiteRepository) GetLatestHand(ctx context.Context, table TableRef) (*StoredHand, error) {
	if err := validateTableRef(table); err != nil {
		return nil, err
	}
	var hands []StoredHand
	var err error
	if table.TournamentID != nil {
		hands, err = r.queryHands(ctx, ` WHERE tournament_id = ? ORDER BY datetime DESC LIMIT 1`, *table.TournamentID)
	} else {
		hands, err = r.queryHands(ctx, ` WHERE cash_game_name = ? ORDER BY datetime DESC LIMIT 1`, *table.CashGameName)
	}
	if err != nil {
		return nil, err
	}
	if len(hands) == 0 {
		return nil, nil
	}
	return &hands[0], nil
}

func (r *SQLiteRepository) GetSeats(ctx context.Context, handID string) ([]StoredSeat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT hand_id, player_name, seat_number, stack, bounty, card1, card2
		FROM seats WHERE hand_id = ? ORDER BY seat_number ASC`, handID)
	if err != nil {
		return nil, fmt.Errorf("query seats: %w", err)
	}
	defer rows.Close()

	var out []StoredSeat
	for rows.Next() {
		var s StoredSeat
		var stack string
		var bounty, card1, card2 sql.NullString
		if err := rows.Scan(&s.HandID, &s.PlayerName, &s.SeatNumber, &stack, &bounty, &card1, &card2); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		if s.Stack, err = decodeAmount(stack); err != nil {
			return nil, err
		}
		if bounty.Valid {
			a, err := decodeAmount(bounty.String)
			if err != nil {
				return nil, err
			}
			s.Bounty = &a
		}
		if card1.Valid {
			c, err := decodeCard(card1.String)
			if err != nil {
				return nil, err
			}
			s.Card1 = &c
		}
		if card2.Valid {
			c, err := decodeCard(card2.String)
			if err != nil {
				return nil, err
			}
			s.Card2 = &c
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) queryActions(ctx context.Context, where string, args ...any) ([]StoredAction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, hand_id, player_name, action_type, amount, is_all_in, street
		FROM actions`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	var out []StoredAction
	for rows.Next() {
		var a StoredAction
		var amount sql.NullString
		if err := rows.Scan(&a.ID, &a.HandID, &a.PlayerName, &a.ActionType, &amount, &a.IsAllIn, &a.Street); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		if amount.Valid {
			amt, err := decodeAmount(amount.String)
			if err != nil {
				return nil, err
			}
			a.Amount = &amt
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetActions(ctx context.Context, handID string) ([]StoredAction, error) {
	return r.queryActions(ctx, ` WHERE hand_id = ? ORDER BY id ASC`, handID)
}

// GetActionsForHand is the read path used by per-hand displays: it hides
// Collect rows even though InsertHands persisted them (SPEC_FULL §9 open
// question 1).
func (r *SQLiteRepository) GetActionsForHand(ctx context.Context, handID string) ([]StoredAction, error) {
	return r.queryActions(ctx, ` WHERE hand_id = ? AND action_type != 'collect' ORDER BY id ASC`, handID)
}

func (r *SQLiteRepository) GetPlayers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT player_name FROM seats ORDER BY player_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetPlayersForTable(ctx context.Context, table TableRef) ([]PlayerSeat, error) {
	latest, err := r.GetLatestHand(ctx, table)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	seats, err := r.GetSeats(ctx, latest.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PlayerSeat, 0, len(seats))
	for _, s := range seats {
		out = append(out, PlayerSeat{PlayerName: s.PlayerName, SeatNumber: s.SeatNumber})
	}
	return out, nil
}

func (r *SQLiteRepository) GetSummaries(ctx context.Context) ([]StoredSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, buyin, date, play_time, entries, mode, tournament_type, speed, finish_place, won
		FROM summaries ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []StoredSummary
	for rows.Next() {
		var s StoredSummary
		var buyin string
		var won sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &buyin, &s.Date, &s.PlayTime, &s.Entries,
			&s.Mode, &s.TournamentType, &s.Speed, &s.FinishPlace, &won); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		d, err := decimal.NewFromString(buyin)
		if err != nil {
			return nil, fmt.Errorf("decode buyin %q: %w", buyin, err)
		}
		s.BuyIn = d
		if won.Valid {
			w, err := decimal.NewFromString(won.String)
			if err != nil {
				return nil, fmt.Errorf("decode won %q: %w", won.String, err)
			}
			s.Won = &w
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Package persistence implements the idempotent storage layer: four
// tables (hands, seats, actions, summaries) behind a typed Repository
// interface, with insert-or-ignore upsert semantics keyed by hand id so
// that re-parsing a growing file under the watcher converges instead of
// duplicating rows.
package persistence

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clemux/holdem-suite/internal/parser"
	"github.com/clemux/holdem-suite/internal/summaryparser"
)

// StoredHand is the hands table's row shape: a flattened, query-friendly
// projection of parser.Hand, not the full AST (actions and seats live in
// their own tables, joined by HandID).
type StoredHand struct {
	ID           string
	HoleCard1    parser.Card
	HoleCard2    parser.Card
	TournamentID *uint64
	CashGameName *string
	Datetime     string
	Button       int
	MaxPlayers   int
	Hero         string
	Ante         *parser.Amount
	SmallBlind   parser.Amount
	BigBlind     parser.Amount
	Pot          parser.Amount
	Rake         *parser.Amount
	Flop1        *parser.Card
	Flop2        *parser.Card
	Flop3        *parser.Card
	Turn         *parser.Card
	River        *parser.Card
}

// StoredSeat is one seats table row.
type StoredSeat struct {
	HandID     string
	PlayerName string
	SeatNumber int
	Stack      parser.Amount
	Bounty     *parser.Amount
	Card1      *parser.Card
	Card2      *parser.Card
}

// StoredAction is one actions table row. ActionType and Street are kept
// as the persisted string domain (see SPEC_FULL §9's "string-typed
// persistence columns" note); callers map them back to the enum domain.
type StoredAction struct {
	ID         int64
	HandID     string
	PlayerName string
	ActionType string
	Amount     *parser.Amount
	IsAllIn    bool
	Street     string
}

// StoredSummary is one summaries table row.
type StoredSummary struct {
	ID             uint32
	Name           string
	BuyIn          decimal.Decimal
	Date           string
	PlayTime       string
	Entries        uint32
	Mode           string
	TournamentType string
	Speed          string
	FinishPlace    uint32
	Won            *decimal.Decimal
}

// PlayerSeat names a player's seat at a table, as returned by
// GetPlayersForTable.
type PlayerSeat struct {
	PlayerName string
	SeatNumber int
}

// TableRef selects a table by tournament or cash-game identity; exactly
// one of TournamentID or CashGameName must be set, matching the "xor"
// selector used by GetLatestHand and GetPlayersForTable.
type TableRef struct {
	TournamentID *uint64
	CashGameName *string
}

// HandWithActions pairs a hand with its full action list, the shape
// GetHandsForPlayer returns.
type HandWithActions struct {
	Hand    StoredHand
	Actions []StoredAction
}

// Repository is the storage layer's read/write contract (C5).
type Repository interface {
	// InsertHands runs the insert-or-ignore-skip-children algorithm over
	// hands in one transaction and returns the count of newly-inserted
	// hands.
	InsertHands(ctx context.Context, hands []parser.Hand) (int, error)
	// InsertSummary inserts a tournament summary, ignoring it if a row
	// with the same id already exists. Returns whether it was inserted.
	InsertSummary(ctx context.Context, s summaryparser.TournamentSummary) (bool, error)

	GetSummaries(ctx context.Context) ([]StoredSummary, error)
	GetHands(ctx context.Context) ([]StoredHand, error)
	GetHandsForTournament(ctx context.Context, tournamentID uint64) ([]StoredHand, error)
	GetHandsForPlayer(ctx context.Context, playerName string) ([]HandWithActions, error)
	GetLatestHand(ctx context.Context, table TableRef) (*StoredHand, error)
	GetSeats(ctx context.Context, handID string) ([]StoredSeat, error)
	GetActions(ctx context.Context, handID string) ([]StoredAction, error)
	GetActionsForHand(ctx context.Context, handID string) ([]StoredAction, error)
	GetPlayers(ctx context.Context) ([]string, error)
	GetPlayersForTable(ctx context.Context, table TableRef) ([]PlayerSeat, error)

	Close() error
}

func validateTableRef(t TableRef) error {
	if (t.TournamentID == nil) == (t.CashGameName == nil) {
		return fmt.Errorf("table ref: exactly one of TournamentID or CashGameName must be set")
	}
	return nil
}

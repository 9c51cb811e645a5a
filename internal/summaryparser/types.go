// Package summaryparser implements the grammar for Winamax tournament
// summary files ("Tournament summary : ..."), a sibling grammar to
// internal/parser's hand-history grammar, built on the same combinator
// toolkit.
package summaryparser

import "github.com/shopspring/decimal"

// PokerType names the ruleset a level is played under. The original
// grammar accepts two tags but always normalizes to HoldemNoLimit; kept
// here unchanged since no summary fixture in the wild exercises the
// Omaha branch.
type PokerType int

const (
	HoldemNoLimit PokerType = iota
	OmahaPotLimit
)

// Level is one blind level from the "Levels : [...]" list.
type Level struct {
	SmallBlind uint32
	BigBlind   uint32
	Ante       uint32
	Seconds    uint32
	PokerType  PokerType
}

// TournamentTypeKind discriminates the tagged TournamentType union.
type TournamentTypeKind int

const (
	Sitngo TournamentTypeKind = iota
	Mtt
	Knockout
	UnknownTournamentType
)

// TournamentType is the tagged union parsed from the "Type : " line.
type TournamentType struct {
	Kind    TournamentTypeKind
	Unknown string // valid when Kind == UnknownTournamentType
}

// BuyIn is the parsed "Buy-In : <buyIn> + <rake>[ + <bounty>]" line.
type BuyIn struct {
	BuyIn  decimal.Decimal
	Rake   decimal.Decimal
	Bounty *decimal.Decimal
}

// TournamentSummary is the top-level AST for one tournament summary file.
type TournamentSummary struct {
	Name           string
	ID             uint32
	Hero           string
	BuyIn          BuyIn
	Entries        uint32
	Mode           string
	TournamentType TournamentType
	Speed          string
	FlightID       uint32
	Levels         []Level
	Prizepool      decimal.Decimal
	StartDate      string
	PlayTime       string
	FinishPlace    uint32
	Won            *decimal.Decimal
}

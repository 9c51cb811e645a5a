package parser

import (
	"strconv"
)

// parseGameInfo parses the header's game-type segment:
// `Tournament "<name>" buyIn: <money> + <money> level: <u32>` | `CashGame` | `HOLD-UP "<alpha>"`.
func parseGameInfo(c Cursor) (Cursor, GameInfo, error) {
	tournament := func(c Cursor) (Cursor, GameInfo, error) {
		c2, _, err := Tag(`Tournament "`)(c)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		c3, name, err := TakeUntil(`"`)(c2)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		c4, _, err := Tag(`" buyIn: `)(c3)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		c5, buyIn, err := parseAmount(c4)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		c6, _, err := Tag(" + ")(c5)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		c7, rake, err := parseAmount(c6)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		c8, _, err := Tag(" level: ")(c7)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		c9, digits, err := Digits1(c8)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		level, convErr := strconv.ParseUint(digits, 10, 32)
		if convErr != nil {
			var zero GameInfo
			return c, zero, failAt(c, "level within u32 range")
		}
		return c9, GameInfo{Kind: GameTournament, TournamentName: name, BuyIn: buyIn, Rake: rake, Level: uint32(level)}, nil
	}
	cashGame := func(c Cursor) (Cursor, GameInfo, error) {
		c2, _, err := Tag("CashGame")(c)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		return c2, GameInfo{Kind: GameCashGame}, nil
	}
	holdUp := func(c Cursor) (Cursor, GameInfo, error) {
		c2, _, err := Tag(`HOLD-UP "`)(c)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		c3, name, err := TakeUntil(`"`)(c2)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		c4, _, err := Tag(`"`)(c3)
		if err != nil {
			var zero GameInfo
			return c, zero, err
		}
		return c4, GameInfo{Kind: GameHoldUp, HoldUpName: name}, nil
	}
	return Alt(tournament, cashGame, holdUp)(c)
}

// parseBlinds parses either "ante/sb/bb" or "sb/bb", trying the
// three-component ante form first since it is not a prefix-compatible
// alternative of the two-component form.
func parseBlinds(c Cursor) (Cursor, Blinds, error) {
	withAnte := func(c Cursor) (Cursor, Blinds, error) {
		c2, ante, err := parseAmount(c)
		if err != nil {
			var zero Blinds
			return c, zero, err
		}
		c3, _, err := Tag("/")(c2)
		if err != nil {
			var zero Blinds
			return c, zero, err
		}
		c4, sb, err := parseAmount(c3)
		if err != nil {
			var zero Blinds
			return c, zero, err
		}
		c5, _, err := Tag("/")(c4)
		if err != nil {
			var zero Blinds
			return c, zero, err
		}
		c6, bb, err := parseAmount(c5)
		if err != nil {
			var zero Blinds
			return c, zero, err
		}
		return c6, Blinds{Ante: &ante, SmallBlind: sb, BigBlind: bb}, nil
	}
	withoutAnte := func(c Cursor) (Cursor, Blinds, error) {
		c2, sb, err := parseAmount(c)
		if err != nil {
			var zero Blinds
			return c, zero, err
		}
		c3, _, err := Tag("/")(c2)
		if err != nil {
			var zero Blinds
			return c, zero, err
		}
		c4, bb, err := parseAmount(c3)
		if err != nil {
			var zero Blinds
			return c, zero, err
		}
		return c4, Blinds{SmallBlind: sb, BigBlind: bb}, nil
	}
	return Alt(withAnte, withoutAnte)(c)
}

// parseHandInfo parses the header line:
// `Winamax Poker - <GameInfo> - HandId: #<id> - Holdem no limit (<blinds>) - <datetime>`
func parseHandInfo(c Cursor) (Cursor, HandInfo, error) {
	c2, _, err := Tag("Winamax Poker - ")(c)
	if err != nil {
		var zero HandInfo
		return c, zero, err
	}
	c3, gameInfo, err := parseGameInfo(c2)
	if err != nil {
		var zero HandInfo
		return c, zero, err
	}
	c4, _, err := Tag(" - HandId: #")(c3)
	if err != nil {
		var zero HandInfo
		return c, zero, err
	}
	c5, handID, err := TakeUntil(" - Holdem no limit (")(c4)
	if err != nil {
		var zero HandInfo
		return c, zero, err
	}
	c6, _, err := Tag(" - Holdem no limit (")(c5)
	if err != nil {
		var zero HandInfo
		return c, zero, err
	}
	c7, blinds, err := parseBlinds(c6)
	if err != nil {
		var zero HandInfo
		return c, zero, err
	}
	c8, _, err := Tag(") - ")(c7)
	if err != nil {
		var zero HandInfo
		return c, zero, err
	}
	c9, datetime, err := RestOfLine(c8)
	if err != nil {
		var zero HandInfo
		return c, zero, err
	}
	return c9, HandInfo{
		GameInfo:  gameInfo,
		HandID:    handID,
		PokerType: HoldemNoLimit,
		Blinds:    blinds,
		Datetime:  datetime,
	}, nil
}

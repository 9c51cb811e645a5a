package summaryparser

import (
	"strconv"

	"github.com/shopspring/decimal"

	gp "github.com/clemux/holdem-suite/internal/parser"
)

// u32 parses a bare non-negative decimal integer into a uint32.
func u32(c gp.Cursor) (gp.Cursor, uint32, error) {
	return gp.TryMap(gp.Digits1, func(s string) (uint32, error) {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, err
		}
		return uint32(v), nil
	})(c)
}

// decimalNumber parses a plain decimal (no sign), e.g. "0.45" or "198.70".
func decimalNumber(c gp.Cursor) (gp.Cursor, decimal.Decimal, error) {
	type numPart struct {
		whole string
		frac  *string
	}
	fracP := gp.Preceded(gp.Tag("."), gp.Digits1)
	c2, whole, err := gp.Digits1(c)
	if err != nil {
		var zero decimal.Decimal
		return c, zero, err
	}
	c3, frac, _ := gp.Opt(fracP)(c2)
	text := whole
	if frac != nil {
		text += "." + *frac
	}
	d, derr := decimal.NewFromString(text)
	if derr != nil {
		var zero decimal.Decimal
		return c, zero, derr
	}
	return c3, d, nil
}

// parseSummaryAmount parses a decimal amount with an optional trailing
// euro sign, matching the original grammar's terminated(float, opt("€")).
func parseSummaryAmount(c gp.Cursor) (gp.Cursor, decimal.Decimal, error) {
	c2, d, err := decimalNumber(c)
	if err != nil {
		var zero decimal.Decimal
		return c, zero, err
	}
	c3, _, _ := gp.Opt(gp.Tag("€"))(c2)
	return c3, d, nil
}

// parsePokerType matches either ruleset tag but always normalizes to
// HoldemNoLimit, preserving the original grammar's behavior: no summary
// fixture seen in the wild actually exercises the Omaha branch downstream,
// so the parsed PokerType is effectively dead data today.
func parsePokerType(c gp.Cursor) (gp.Cursor, PokerType, error) {
	return gp.Map(
		gp.Alt(gp.Tag("holdem-no-limit"), gp.Tag("omaha-pot-limit")),
		func(string) PokerType { return HoldemNoLimit },
	)(c)
}

// parseLevel parses one entry of the "Levels : [...]" list, e.g.
// "100-200:25:2100:holdem-no-limit" (small_blind-big_blind:ante:seconds:type).
func parseLevel(c gp.Cursor) (gp.Cursor, Level, error) {
	c2, sb, err := u32(c)
	if err != nil {
		var zero Level
		return c, zero, err
	}
	c3, _, err := gp.Tag("-")(c2)
	if err != nil {
		var zero Level
		return c, zero, err
	}
	c4, bb, err := u32(c3)
	if err != nil {
		var zero Level
		return c, zero, err
	}
	c5, ante, err := gp.Preceded(gp.Tag(":"), u32)(c4)
	if err != nil {
		var zero Level
		return c, zero, err
	}
	c6, secs, err := gp.Preceded(gp.Tag(":"), u32)(c5)
	if err != nil {
		var zero Level
		return c, zero, err
	}
	c7, pt, err := gp.Preceded(gp.Tag(":"), parsePokerType)(c6)
	if err != nil {
		var zero Level
		return c, zero, err
	}
	return c7, Level{SmallBlind: sb, BigBlind: bb, Ante: ante, Seconds: secs, PokerType: pt}, nil
}

// parseTournamentType parses the "Type : " line's value: one of the three
// known tags, or an unrecognized tag carried verbatim in Unknown.
func parseTournamentType(c gp.Cursor) (gp.Cursor, TournamentType, error) {
	return gp.Alt(
		gp.Map(gp.Tag("sitngo"), func(string) TournamentType { return TournamentType{Kind: Sitngo} }),
		gp.Map(gp.Tag("tt"), func(string) TournamentType { return TournamentType{Kind: Mtt} }),
		gp.Map(gp.Tag("knockout"), func(string) TournamentType { return TournamentType{Kind: Knockout} }),
		gp.Map(gp.TakeUntil("\n"), func(s string) TournamentType {
			return TournamentType{Kind: UnknownTournamentType, Unknown: s}
		}),
	)(c)
}

// parseBuyIn parses "<buyIn> + <rake>[ + <bounty>]", each a decimal with an
// optional trailing euro sign.
func parseBuyIn(c gp.Cursor) (gp.Cursor, BuyIn, error) {
	c2, buyIn, err := parseSummaryAmount(c)
	if err != nil {
		var zero BuyIn
		return c, zero, err
	}
	c3, _, err := gp.Tag(" + ")(c2)
	if err != nil {
		var zero BuyIn
		return c, zero, err
	}
	c4, rake, err := parseSummaryAmount(c3)
	if err != nil {
		var zero BuyIn
		return c, zero, err
	}
	c5, bounty, _ := gp.Opt(gp.Preceded(gp.Tag(" + "), parseSummaryAmount))(c4)
	return c5, BuyIn{BuyIn: buyIn, Rake: rake, Bounty: bounty}, nil
}

// placeSuffix matches the ordinal suffix on "You finished in <n><suffix>".
func placeSuffix(c gp.Cursor) (gp.Cursor, string, error) {
	return gp.Alt(
		gp.Tag("th place\n"),
		gp.Tag("st place\n"),
		gp.Tag("nd place\n"),
		gp.Tag("rd place\n"),
	)(c)
}

func line(lit string) gp.Parser[string] {
	return gp.Delimited(gp.Tag(lit), gp.TakeUntil("\n"), gp.Newline)
}

// Parse parses one complete Winamax tournament summary document, grounded
// on the sibling grammar in internal/parser and on the field order and
// literal tags of the original summary-file parser (including its
// "Levels : Levels : [" opening tag, kept verbatim since that doubled
// prefix is what real exported summary files contain).
func Parse(text string) (TournamentSummary, error) {
	c := gp.NewCursor(text)

	c, _, err := gp.Tag("Winamax Poker - Tournament summary : ")(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, name, err := gp.TakeUntil("(")(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, id, err := gp.Delimited(gp.Tag("("), u32, gp.Tag(")"))(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, _, err = gp.Terminated(gp.TakeUntil("\n"), gp.Newline)(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, hero, err := line("Player : ")(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, buyIn, err := gp.Delimited(gp.Tag("Buy-In : "), parseBuyIn, gp.Newline)(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, entries, err := gp.Delimited(gp.Tag("Registered players : "), u32, gp.Newline)(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, mode, err := line("Mode : ")(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, tType, err := gp.Delimited(gp.Tag("Type : "), parseTournamentType, gp.Newline)(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, speed, err := line("Speed : ")(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, flightID, err := gp.Delimited(gp.Tag("Flight ID : "), u32, gp.Newline)(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, levels, err := gp.Delimited(
		gp.Tag("Levels : Levels : ["),
		gp.SeparatedList1(parseLevel, gp.Tag(",")),
		gp.Tag("]\n"),
	)(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, prizepool, err := gp.Delimited(gp.Tag("Prizepool : "), parseSummaryAmount, gp.Newline)(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, startDate, err := line("Tournament started ")(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, playTime, err := line("You played ")(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, finishPlace, err := gp.Preceded(gp.Tag("You finished in "), u32)(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	c, _, err = placeSuffix(c)
	if err != nil {
		return TournamentSummary{}, err
	}
	_, won, _ := gp.Opt(gp.Preceded(gp.Tag("You won "), parseSummaryAmount))(c)

	return TournamentSummary{
		Name:           name,
		ID:             id,
		Hero:           hero,
		BuyIn:          buyIn,
		Entries:        entries,
		Mode:           mode,
		TournamentType: tType,
		Speed:          speed,
		FlightID:       flightID,
		Levels:         levels,
		Prizepool:      prizepool,
		StartDate:      startDate,
		PlayTime:       playTime,
		FinishPlace:    finishPlace,
		Won:            won,
	}, nil
}

package parser

import "strings"

// sectionMarker matches a "*** NAME ***" line and returns its remaining
// text on the same line (usually empty, sometimes a board announcement
// like "*** FLOP *** [Ah Td 2c]").
func sectionMarker(name string) Parser[string] {
	open := Tag("*** " + name + " ***")
	return func(c Cursor) (Cursor, string, error) {
		c2, _, err := open(c)
		if err != nil {
			var zero string
			return c, zero, err
		}
		c3, rest, err := RestOfLine(c2)
		if err != nil {
			var zero string
			return c, zero, err
		}
		if c3.AtEOF() {
			return c3, rest, nil
		}
		c4, _, err := Newline(c3)
		if err != nil {
			var zero string
			return c, zero, err
		}
		return c4, rest, nil
	}
}

// parseDealtToHero parses the "Dealt to <name> [<c1> <c2>]" line.
func parseDealtToHero(c Cursor) (Cursor, DealtToHero, error) {
	c2, _, err := Tag("Dealt to ")(c)
	if err != nil {
		var zero DealtToHero
		return c, zero, err
	}
	c3, name, err := TakeUntil(" [")(c2)
	if err != nil {
		var zero DealtToHero
		return c, zero, err
	}
	c4, _, err := Tag(" [")(c3)
	if err != nil {
		var zero DealtToHero
		return c, zero, err
	}
	c5, cards, err := parseHoleCards(c4)
	if err != nil {
		var zero DealtToHero
		return c, zero, err
	}
	c6, _, err := Tag("]")(c5)
	if err != nil {
		var zero DealtToHero
		return c, zero, err
	}
	return c6, DealtToHero{PlayerName: name, HoleCards: cards}, nil
}

// parseStreet parses one "*** NAME ***" section followed by its action
// lines, up to (not including) the next section marker or the summary.
func parseStreet(name string, kind StreetKind) Parser[Street] {
	return func(c Cursor) (Cursor, Street, error) {
		c2, _, err := sectionMarker(name)(c)
		if err != nil {
			var zero Street
			return c, zero, err
		}
		c3, actions, err := parseActions(c2)
		if err != nil {
			var zero Street
			return c, zero, err
		}
		return c3, Street{StreetType: kind, Actions: actions}, nil
	}
}

// ParseHand parses exactly one hand record (header through summary) and
// returns the unconsumed remainder.
func ParseHand(c Cursor) (Cursor, Hand, error) {
	c2, handInfo, err := parseHandInfo(c)
	if err != nil {
		var zero Hand
		return c, zero, err
	}
	c3, _, err := Newline(c2)
	if err != nil {
		var zero Hand
		return c, zero, err
	}
	c4, tableInfo, err := parseTableInfo(c3)
	if err != nil {
		var zero Hand
		return c, zero, err
	}
	c5, _, err := Newline(c4)
	if err != nil {
		var zero Hand
		return c, zero, err
	}
	c6, seats, err := parseSeats(c5)
	if err != nil {
		var zero Hand
		return c, zero, err
	}

	c7, _, err := sectionMarker("ANTE/BLINDS")(c6)
	if err != nil {
		var zero Hand
		return c, zero, err
	}
	c8, blindActions, err := parseActions(c7)
	if err != nil {
		var zero Hand
		return c, zero, err
	}

	c9, hero, err := Terminated(parseDealtToHero, Newline)(c8)
	if err != nil {
		var zero Hand
		return c, zero, err
	}

	streets := []Street{{StreetType: Preflop, Actions: blindActions}}

	type streetDef struct {
		name string
		kind StreetKind
	}
	defs := []streetDef{
		{"PRE-FLOP", Preflop},
		{"FLOP", Flop},
		{"TURN", Turn},
		{"RIVER", River},
		{"SHOW DOWN", Showdown},
	}
	cur := c9
	for _, d := range defs {
		peek := Tag("*** " + d.name + " ***")
		if _, _, err := peek(cur); err != nil {
			continue
		}
		next, street, err := parseStreet(d.name, d.kind)(cur)
		if err != nil {
			var zero Hand
			return c, zero, err
		}
		if d.name == "PRE-FLOP" {
			streets[0].Actions = append(streets[0].Actions, street.Actions...)
			cur = next
			continue
		}
		streets = append(streets, street)
		cur = next
	}

	c10, _, err := sectionMarker("SUMMARY")(cur)
	if err != nil {
		var zero Hand
		return c, zero, err
	}
	c11, summary, err := parseHandSummary(c10)
	if err != nil {
		var zero Hand
		return c, zero, err
	}

	return c11, Hand{
		HandInfo:    handInfo,
		TableInfo:   tableInfo,
		Seats:       seats,
		DealtToHero: hero,
		Streets:     streets,
		Summary:     summary,
	}, nil
}

// ParseHands parses a whole hand-history file: one or more hand records
// separated by blank lines. Trailing whitespace after the last record is
// tolerated; anything else left unconsumed is a parse error. Empty or
// whitespace-only input yields an empty list and no error.
func ParseHands(text string) ([]Hand, error) {
	if strings.TrimSpace(text) == "" {
		return []Hand{}, nil
	}
	c := NewCursor(text)
	c2, hands, err := SeparatedList1(ParseHand, Many1(BlankLine))(c)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c2.Rest()) != "" {
		return nil, failAt(c2, "end of file or blank-line separated hand record")
	}
	return hands, nil
}

package parser

import "strconv"

// parseHandCategory parses the "with <HandCategory>" fragment of a summary
// player line. Tag prefixes and rank-pair separators are ported verbatim
// from the original grammar; see DESIGN.md for the one deliberate
// deviation (Flush and StraightFlush also tolerate a trailing " high",
// matching Straight's own suffix, instead of leaving it unconsumed).
func parseHandCategory(c Cursor) (Cursor, HandCategory, error) {
	rankPair := func(c Cursor) (Cursor, [2]Rank, error) {
		c2, r1, err := parseRankLong(c)
		if err != nil {
			var zero [2]Rank
			return c, zero, err
		}
		c3, _, err := Tag(" and ")(c2)
		if err != nil {
			var zero [2]Rank
			return c, zero, err
		}
		c4, r2, err := parseRankLong(c3)
		if err != nil {
			var zero [2]Rank
			return c, zero, err
		}
		return c4, [2]Rank{r1, r2}, nil
	}
	optHigh := func(c Cursor) Cursor {
		c2, _, _ := Opt(Tag(" high"))(c)
		return c2
	}

	highCard := func(c Cursor) (Cursor, HandCategory, error) {
		c2, _, err := Tag("High card : ")(c)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c3, r, err := parseRankLong(c2)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		return c3, HandCategory{Kind: HighCard, High: r}, nil
	}
	pair := func(c Cursor) (Cursor, HandCategory, error) {
		c2, _, err := Tag("One pair : ")(c)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c3, r, err := parseRankLong(c2)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		return c3, HandCategory{Kind: Pair, High: r}, nil
	}
	twoPair := func(c Cursor) (Cursor, HandCategory, error) {
		c2, _, err := Tag("Two pairs : ")(c)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c3, rr, err := rankPair(c2)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		r2 := rr[1]
		return c3, HandCategory{Kind: TwoPair, High: rr[0], Secondary: &r2}, nil
	}
	trips := func(c Cursor) (Cursor, HandCategory, error) {
		c2, _, err := Tag("Trips of ")(c)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c3, r, err := parseRankLong(c2)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		return c3, HandCategory{Kind: ThreeOfAKind, High: r}, nil
	}
	quads := func(c Cursor) (Cursor, HandCategory, error) {
		c2, _, err := Tag("Four of a kind : ")(c)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c3, r, err := parseRankLong(c2)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		return c3, HandCategory{Kind: FourOfAKind, High: r}, nil
	}
	full := func(c Cursor) (Cursor, HandCategory, error) {
		c2, _, err := Tag("Full of ")(c)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c3, rr, err := rankPair(c2)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		r2 := rr[1]
		return c3, HandCategory{Kind: FullHouse, High: rr[0], Secondary: &r2}, nil
	}
	straight := func(c Cursor) (Cursor, HandCategory, error) {
		c2, _, err := Tag("Straight ")(c)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c3, r, err := parseRankLong(c2)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c4, _, err := Tag(" high")(c3)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		return c4, HandCategory{Kind: Straight, High: r}, nil
	}
	flush := func(c Cursor) (Cursor, HandCategory, error) {
		c2, _, err := Tag("Flush ")(c)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c3, r, err := parseRankLong(c2)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		return optHigh(c3), HandCategory{Kind: Flush, High: r}, nil
	}
	straightFlush := func(c Cursor) (Cursor, HandCategory, error) {
		c2, _, err := Tag("Straight flush ")(c)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		c3, r, err := parseRankLong(c2)
		if err != nil {
			var zero HandCategory
			return c, zero, err
		}
		return optHigh(c3), HandCategory{Kind: StraightFlush, High: r}, nil
	}

	return Alt(highCard, pair, twoPair, trips, quads, full, straight, flush, straightFlush)(c)
}

// parseSummaryPlayerText parses one summary-player line's text (no
// trailing newline):
// `Seat <n>: <name>[ (<position>)][ showed [<holecards>] and] (won <amount>|lost)[ with <HandCategory>]`
func parseSummaryPlayerText(line string) (SummaryPlayer, error) {
	cur := NewCursor(line)
	c2, _, err := Tag("Seat ")(cur)
	if err != nil {
		return SummaryPlayer{}, err
	}
	c3, seatDigits, err := Digits1(c2)
	if err != nil {
		return SummaryPlayer{}, err
	}
	seat, convErr := strconv.Atoi(seatDigits)
	if convErr != nil {
		return SummaryPlayer{}, failAt(c2, "seat number in range")
	}
	c4, _, err := Tag(": ")(c3)
	if err != nil {
		return SummaryPlayer{}, err
	}

	type summaryResult struct {
		Kind   SummaryResultKind
		Amount Amount
	}

	position := Delimited(Tag(" ("), TakeUntil(")"), Tag(")"))
	showed := Delimited(Tag(" showed ["), parseHoleCards, Tag("] and"))
	won := Map(Preceded(Tag(" won "), parseAmount), func(a Amount) summaryResult {
		return summaryResult{Kind: ResultWon, Amount: a}
	})
	lost := Map(Tag(" lost"), func(string) summaryResult {
		return summaryResult{Kind: ResultLost}
	})

	tail := func(c Cursor) (Cursor, struct {
		Position  *string
		Showed    *HoleCards
		ResultTag SummaryResultKind
		WonAmount Amount
		Category  *HandCategory
	}, error) {
		type out = struct {
			Position  *string
			Showed    *HoleCards
			ResultTag SummaryResultKind
			WonAmount Amount
			Category  *HandCategory
		}
		c2, pos, _ := Opt(position)(c)
		c3, shown, _ := Opt(showed)(c2)
		c4, res, err := Alt(won, lost)(c3)
		if err != nil {
			var zero out
			return c, zero, err
		}
		c5, category, _ := Opt(Preceded(Tag(" with "), parseHandCategory))(c4)
		return c5, out{Position: pos, Showed: shown, ResultTag: res.Kind, WonAmount: res.Amount, Category: category}, nil
	}

	nameAndTail, err := func() (struct {
		Name string
		Tail struct {
			Position  *string
			Showed    *HoleCards
			ResultTag SummaryResultKind
			WonAmount Amount
			Category  *HandCategory
		}
	}, error) {
		type nt = struct {
			Name string
			Tail struct {
				Position  *string
				Showed    *HoleCards
				ResultTag SummaryResultKind
				WonAmount Amount
				Category  *HandCategory
			}
		}
		res, outcome, err := ManyTill(anyCharNotNewline, tail)(c4)
		if err != nil {
			var zero nt
			return zero, err
		}
		if !res.AtEOF() {
			var zero nt
			return zero, failAt(res, "end of summary player line")
		}
		nameBytes := make([]byte, len(outcome.Items))
		copy(nameBytes, outcome.Items)
		return nt{Name: string(nameBytes), Tail: outcome.End}, nil
	}()
	if err != nil {
		return SummaryPlayer{}, err
	}

	sp := SummaryPlayer{
		Name:         nameAndTail.Name,
		Seat:         seat,
		Result:       nameAndTail.Tail.ResultTag,
		WonAmount:    nameAndTail.Tail.WonAmount,
		HandCategory: nameAndTail.Tail.Category,
	}
	if nameAndTail.Tail.Showed != nil {
		sp.HoleCards = nameAndTail.Tail.Showed
	}
	return sp, nil
}

func parseBoard(c Cursor) (Cursor, []Card, error) {
	cardList := SeparatedList1(parseCard, Tag(" "))
	return Delimited(Tag("Board: ["), cardList, Tag("]"))(c)
}

// parseHandSummary parses the *** SUMMARY *** section's body:
// `Total pot <amount> | (Rake <amount>|No rake)`, optional board, then one
// or more summary-player lines.
func parseHandSummary(c Cursor) (Cursor, HandSummary, error) {
	c2, _, err := Tag("Total pot ")(c)
	if err != nil {
		var zero HandSummary
		return c, zero, err
	}
	c3, pot, err := parseAmount(c2)
	if err != nil {
		var zero HandSummary
		return c, zero, err
	}
	c4, _, err := Tag(" | ")(c3)
	if err != nil {
		var zero HandSummary
		return c, zero, err
	}
	rakeParser := Map(Preceded(Tag("Rake "), parseAmount), func(a Amount) *Amount { return &a })
	noRakeParser := Map(Tag("No rake"), func(string) *Amount { return nil })
	c5, rake, err := Alt(rakeParser, noRakeParser)(c4)
	if err != nil {
		var zero HandSummary
		return c, zero, err
	}
	c6, _, err := Newline(c5)
	if err != nil {
		var zero HandSummary
		return c, zero, err
	}

	boardLine := Terminated(parseBoard, Newline)
	c7, board, _ := Opt(boardLine)(c6)
	var boardCards []Card
	if board != nil {
		boardCards = *board
	}

	playerLine := func(c Cursor) (Cursor, SummaryPlayer, error) {
		c2, line, err := RestOfLine(c)
		if err != nil {
			var zero SummaryPlayer
			return c, zero, err
		}
		sp, pErr := parseSummaryPlayerText(line)
		if pErr != nil {
			var zero SummaryPlayer
			return c, zero, pErr
		}
		if c2.AtEOF() {
			return c2, sp, nil
		}
		c3, _, err := Newline(c2)
		if err != nil {
			var zero SummaryPlayer
			return c, zero, err
		}
		return c3, sp, nil
	}
	c8, players, err := Many1(playerLine)(c7)
	if err != nil {
		var zero HandSummary
		return c, zero, err
	}

	return c8, HandSummary{Pot: pot, Rake: rake, Board: boardCards, Players: players}, nil
}

package parser

// parseRankShort parses a single rank character in its card form (2-9, T,
// J, Q, K, A).
func parseRankShort(c Cursor) (Cursor, Rank, error) {
	rest := c.Rest()
	if len(rest) == 0 {
		var zero Rank
		return c, zero, failAt(c, "rank")
	}
	switch rest[0] {
	case '2':
		return c.advance(1), Rank2, nil
	case '3':
		return c.advance(1), Rank3, nil
	case '4':
		return c.advance(1), Rank4, nil
	case '5':
		return c.advance(1), Rank5, nil
	case '6':
		return c.advance(1), Rank6, nil
	case '7':
		return c.advance(1), Rank7, nil
	case '8':
		return c.advance(1), Rank8, nil
	case '9':
		return c.advance(1), Rank9, nil
	case 'T':
		return c.advance(1), RankT, nil
	case 'J':
		return c.advance(1), RankJ, nil
	case 'Q':
		return c.advance(1), RankQ, nil
	case 'K':
		return c.advance(1), RankK, nil
	case 'A':
		return c.advance(1), RankA, nil
	default:
		var zero Rank
		return c, zero, failAt(c, "rank (2-9, T, J, Q, K, A)")
	}
}

// parseSuit parses a single suit character (s, h, d, c).
func parseSuit(c Cursor) (Cursor, Suit, error) {
	rest := c.Rest()
	if len(rest) == 0 {
		var zero Suit
		return c, zero, failAt(c, "suit")
	}
	switch rest[0] {
	case 's':
		return c.advance(1), Spades, nil
	case 'h':
		return c.advance(1), Hearts, nil
	case 'd':
		return c.advance(1), Diamonds, nil
	case 'c':
		return c.advance(1), Clubs, nil
	default:
		var zero Suit
		return c, zero, failAt(c, "suit (s, h, d, c)")
	}
}

// parseCard parses a two-character card token, e.g. "Ah".
func parseCard(c Cursor) (Cursor, Card, error) {
	c2, r, err := parseRankShort(c)
	if err != nil {
		var zero Card
		return c, zero, err
	}
	c3, s, err := parseSuit(c2)
	if err != nil {
		var zero Card
		return c, zero, err
	}
	return c3, Card{Rank: r, Suit: s}, nil
}

// parseHoleCards parses "<card1> <card2>".
func parseHoleCards(c Cursor) (Cursor, HoleCards, error) {
	c2, c1, err := parseCard(c)
	if err != nil {
		var zero HoleCards
		return c, zero, err
	}
	c3, _, err := Tag(" ")(c2)
	if err != nil {
		var zero HoleCards
		return c, zero, err
	}
	c4, c2card, err := parseCard(c3)
	if err != nil {
		var zero HoleCards
		return c, zero, err
	}
	return c4, HoleCards{Card1: c1, Card2: c2card}, nil
}

// parseRankLong parses a rank's long textual form, trying the plural tag
// before the singular tag for every rank. This ordering matters: a
// backtracking alternation commits to the first match, and "Queens" is not
// a prefix of anything the singular branch would otherwise consume, so the
// plural alternative must be offered first or it is never reached when
// both could apply to the surrounding text.
func parseRankLong(c Cursor) (Cursor, Rank, error) {
	type entry struct {
		rank Rank
		long string
	}
	ranks := []Rank{RankA, RankK, RankQ, RankJ, RankT, Rank9, Rank8, Rank7, Rank6, Rank5, Rank4, Rank3, Rank2}
	entries := make([]entry, 0, len(ranks)*2)
	for _, r := range ranks {
		entries = append(entries, entry{rank: r, long: r.LongPlural()})
		entries = append(entries, entry{rank: r, long: r.LongSingular()})
	}
	for _, e := range entries {
		if c2, _, err := Tag(e.long)(c); err == nil {
			return c2, e.rank, nil
		}
	}
	var zero Rank
	return c, zero, failAt(c, "rank name (e.g. Ace, Queens)")
}

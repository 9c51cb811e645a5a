package persistence

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/clemux/holdem-suite/internal/parser"
)

// encodeAmount renders an Amount into the "chips:<n>" / "money:<decimal>"
// text form stored in amount-valued columns, since the schema has no
// separate kind column alongside each amount (SPEC_FULL §4.5).
func encodeAmount(a parser.Amount) string {
	switch a.Kind {
	case parser.AmountChips:
		return fmt.Sprintf("chips:%d", a.Chips)
	case parser.AmountMoney:
		return "money:" + a.Money.String()
	default:
		panic("unreachable amount kind")
	}
}

func decodeAmount(s string) (parser.Amount, error) {
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return parser.Amount{}, fmt.Errorf("decode amount %q: missing kind prefix", s)
	}
	switch kind {
	case "chips":
		var v uint64
		if _, err := fmt.Sscanf(rest, "%d", &v); err != nil {
			return parser.Amount{}, fmt.Errorf("decode chips amount %q: %w", s, err)
		}
		return parser.ChipsAmount(uint32(v)), nil
	case "money":
		d, err := decimal.NewFromString(rest)
		if err != nil {
			return parser.Amount{}, fmt.Errorf("decode money amount %q: %w", s, err)
		}
		return parser.MoneyAmount(d), nil
	default:
		return parser.Amount{}, fmt.Errorf("decode amount %q: unknown kind %q", s, kind)
	}
}

var rankShort = map[parser.Rank]byte{
	parser.Rank2: '2', parser.Rank3: '3', parser.Rank4: '4', parser.Rank5: '5',
	parser.Rank6: '6', parser.Rank7: '7', parser.Rank8: '8', parser.Rank9: '9',
	parser.RankT: 'T', parser.RankJ: 'J', parser.RankQ: 'Q', parser.RankK: 'K', parser.RankA: 'A',
}

var rankFromShort = func() map[byte]parser.Rank {
	m := make(map[byte]parser.Rank, len(rankShort))
	for r, b := range rankShort {
		m[b] = r
	}
	return m
}()

var suitFromShort = map[byte]parser.Suit{
	's': parser.Spades, 'h': parser.Hearts, 'd': parser.Diamonds, 'c': parser.Clubs,
}

// encodeCard renders a card in its two-character notation, e.g. "As".
func encodeCard(c parser.Card) string { return c.String() }

func decodeCard(s string) (parser.Card, error) {
	if len(s) != 2 {
		return parser.Card{}, fmt.Errorf("decode card %q: want 2 characters", s)
	}
	rank, ok := rankFromShort[s[0]]
	if !ok {
		return parser.Card{}, fmt.Errorf("decode card %q: unknown rank", s)
	}
	suit, ok := suitFromShort[s[1]]
	if !ok {
		return parser.Card{}, fmt.Errorf("decode card %q: unknown suit", s)
	}
	return parser.Card{Rank: rank, Suit: suit}, nil
}

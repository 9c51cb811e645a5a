package parser

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Amount is the tagged union of a chip count and a real-money value.
// Chips and Money never unify: a raise in chips is never compared against
// a stack in money, and the storage layer keeps the kind in the stored
// text itself (a "chips:" or "money:" prefix, see persistence.encodeAmount).
type Amount struct {
	Kind  AmountKind
	Chips uint32          // valid when Kind == AmountChips
	Money decimal.Decimal // valid when Kind == AmountMoney
}

// ChipsAmount constructs a chips-denominated Amount.
func ChipsAmount(v uint32) Amount { return Amount{Kind: AmountChips, Chips: v} }

// MoneyAmount constructs a money-denominated Amount.
func MoneyAmount(v decimal.Decimal) Amount { return Amount{Kind: AmountMoney, Money: v} }

func (a Amount) String() string {
	switch a.Kind {
	case AmountChips:
		return strconv.FormatUint(uint64(a.Chips), 10)
	case AmountMoney:
		return a.Money.StringFixed(2) + "€"
	default:
		panic("unreachable amount kind")
	}
}

// euroSign is the literal UTF-8 encoding of U+20AC (EURO SIGN).
const euroSign = "€"

// amountMoney parses a decimal amount immediately followed by the euro sign,
// e.g. "0.30€".
func amountMoney(c Cursor) (Cursor, Amount, error) {
	type numPart struct {
		whole string
		frac  *string
	}
	wholeP := Digits1
	fracP := Preceded(Tag("."), Digits1)
	numP := func(c Cursor) (Cursor, numPart, error) {
		c2, whole, err := wholeP(c)
		if err != nil {
			var zero numPart
			return c, zero, err
		}
		c3, frac, _ := Opt(fracP)(c2)
		return c3, numPart{whole: whole, frac: frac}, nil
	}
	c2, n, err := numP(c)
	if err != nil {
		var zero Amount
		return c, zero, err
	}
	text := n.whole
	if n.frac != nil {
		text += "." + *n.frac
	}
	c3, _, err := Tag(euroSign)(c2)
	if err != nil {
		var zero Amount
		return c, zero, err
	}
	d, dErr := decimal.NewFromString(text)
	if dErr != nil {
		var zero Amount
		return c, zero, failAt(c, fmt.Sprintf("valid decimal: %v", dErr))
	}
	return c3, MoneyAmount(d), nil
}

// decimalMoney parses a decimal number into a money Amount without
// consuming a trailing euro sign, e.g. the "0.45" in "0.45€ bounty". Unlike
// amountMoney, the euro sign (if any) is left for the caller to match
// explicitly — needed wherever a fixed literal follows the amount directly,
// such as the seat bounty annotation's "€ bounty" tag.
func decimalMoney(c Cursor) (Cursor, Amount, error) {
	c2, whole, err := Digits1(c)
	if err != nil {
		var zero Amount
		return c, zero, err
	}
	c3, frac, _ := Opt(Preceded(Tag("."), Digits1))(c2)
	text := whole
	if frac != nil {
		text += "." + *frac
	}
	d, dErr := decimal.NewFromString(text)
	if dErr != nil {
		var zero Amount
		return c, zero, failAt(c, fmt.Sprintf("valid decimal: %v", dErr))
	}
	return c3, MoneyAmount(d), nil
}

// amountChips parses a bare non-negative integer not followed by the euro
// sign, e.g. "1350".
func amountChips(c Cursor) (Cursor, Amount, error) {
	c2, digits, err := Digits1(c)
	if err != nil {
		var zero Amount
		return c, zero, err
	}
	v, convErr := strconv.ParseUint(digits, 10, 32)
	if convErr != nil {
		var zero Amount
		return c, zero, failAt(c, fmt.Sprintf("chips amount in range: %v", convErr))
	}
	return c2, ChipsAmount(uint32(v)), nil
}

// parseAmount tries the money form first (decimal+€), falling back to bare
// chips, matching the grammar's alt((amount_money, amount_chips)).
func parseAmount(c Cursor) (Cursor, Amount, error) {
	return Alt(amountMoney, amountChips)(c)
}

// Package parser implements the Winamax hand-history grammar: card and
// amount primitives (C1) and the hand record grammar (C2).
//
// The grammar is expressed with a small generic combinator toolkit
// (this file) rather than a regex scanner or a parser generator, in the
// shape the original nom-based grammar suggests: alt, tuple, preceded,
// terminated, delimited, many_till, separated_list1, map, opt.
package parser

import (
	"fmt"
	"strings"
)

// Cursor is an immutable parse position over the input text. Parsers never
// mutate a Cursor in place; each successful step returns a new one.
type Cursor struct {
	input string
	pos   int
}

// NewCursor starts a cursor at the beginning of s.
func NewCursor(s string) Cursor { return Cursor{input: s} }

// Rest returns the unconsumed remainder of the input.
func (c Cursor) Rest() string { return c.input[c.pos:] }

// AtEOF reports whether the cursor has consumed the entire input.
func (c Cursor) AtEOF() bool { return c.pos >= len(c.input) }

// Pos returns the current byte offset, used for error reporting.
func (c Cursor) Pos() int { return c.pos }

func (c Cursor) advance(n int) Cursor { return Cursor{input: c.input, pos: c.pos + n} }

// ParseError reports a grammar failure: the byte position reached and the
// set of alternatives that would have allowed progress from there.
type ParseError struct {
	Pos      int
	Expected []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at byte %d: expected %s", e.Pos, strings.Join(e.Expected, " or "))
}

func failAt(c Cursor, expected string) error {
	return &ParseError{Pos: c.Pos(), Expected: []string{expected}}
}

// mergeExpected keeps the error that got furthest into the input, which in
// a backtracking alternation is almost always the most useful diagnostic.
func mergeExpected(a, b error) error {
	pa, ok := a.(*ParseError)
	if !ok {
		return b
	}
	pb, ok := b.(*ParseError)
	if !ok {
		return a
	}
	if pb.Pos > pa.Pos {
		return pb
	}
	if pb.Pos == pa.Pos {
		return &ParseError{Pos: pa.Pos, Expected: append(append([]string{}, pa.Expected...), pb.Expected...)}
	}
	return pa
}

// Parser consumes a prefix of a Cursor and yields a value plus the
// remaining cursor, or fails leaving the cursor untouched (callers must not
// use the returned cursor when err != nil).
type Parser[T any] func(Cursor) (Cursor, T, error)

// Tag matches a literal string exactly.
func Tag(lit string) Parser[string] {
	return func(c Cursor) (Cursor, string, error) {
		if strings.HasPrefix(c.Rest(), lit) {
			return c.advance(len(lit)), lit, nil
		}
		var zero string
		return c, zero, failAt(c, fmt.Sprintf("%q", lit))
	}
}

// Map transforms a successful parse result.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(c Cursor) (Cursor, U, error) {
		c2, v, err := p(c)
		if err != nil {
			var zero U
			return c, zero, err
		}
		return c2, f(v), nil
	}
}

// TryMap transforms a successful parse result, allowing the transform
// itself to fail (e.g. strconv.Atoi on digits that overflow).
func TryMap[T, U any](p Parser[T], f func(T) (U, error)) Parser[U] {
	return func(c Cursor) (Cursor, U, error) {
		c2, v, err := p(c)
		if err != nil {
			var zero U
			return c, zero, err
		}
		u, mErr := f(v)
		if mErr != nil {
			var zero U
			return c, zero, failAt(c, mErr.Error())
		}
		return c2, u, nil
	}
}

// Opt makes a parser optional: failure yields a nil pointer and no error,
// without consuming input.
func Opt[T any](p Parser[T]) Parser[*T] {
	return func(c Cursor) (Cursor, *T, error) {
		c2, v, err := p(c)
		if err != nil {
			return c, nil, nil
		}
		return c2, &v, nil
	}
}

// Alt tries each alternative in order and commits to the first that
// succeeds, matching the grammar's "backtracking over a closed set of
// alternatives; the first matching alternative wins" rule.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	return func(c Cursor) (Cursor, T, error) {
		var lastErr error
		for _, p := range ps {
			c2, v, err := p(c)
			if err == nil {
				return c2, v, nil
			}
			if lastErr == nil {
				lastErr = err
			} else {
				lastErr = mergeExpected(lastErr, err)
			}
		}
		var zero T
		if lastErr == nil {
			lastErr = failAt(c, "one of the alternatives")
		}
		return c, zero, lastErr
	}
}

// Preceded runs p1 then p2, discarding p1's value.
func Preceded[A, B any](p1 Parser[A], p2 Parser[B]) Parser[B] {
	return func(c Cursor) (Cursor, B, error) {
		c2, _, err := p1(c)
		if err != nil {
			var zero B
			return c, zero, err
		}
		c3, v, err := p2(c2)
		if err != nil {
			var zero B
			return c, zero, err
		}
		return c3, v, nil
	}
}

// Terminated runs p1 then p2, discarding p2's value.
func Terminated[A, B any](p1 Parser[A], p2 Parser[B]) Parser[A] {
	return func(c Cursor) (Cursor, A, error) {
		c2, v, err := p1(c)
		if err != nil {
			var zero A
			return c, zero, err
		}
		c3, _, err := p2(c2)
		if err != nil {
			var zero A
			return c, zero, err
		}
		return c3, v, nil
	}
}

// Delimited runs open, mid, close in order, keeping only mid's value.
func Delimited[A, B, C any](open Parser[A], mid Parser[B], close Parser[C]) Parser[B] {
	return func(c Cursor) (Cursor, B, error) {
		c2, _, err := open(c)
		if err != nil {
			var zero B
			return c, zero, err
		}
		c3, v, err := mid(c2)
		if err != nil {
			var zero B
			return c, zero, err
		}
		c4, _, err := close(c3)
		if err != nil {
			var zero B
			return c, zero, err
		}
		return c4, v, nil
	}
}

// Seq2 runs two parsers in sequence and pairs their results.
func Seq2[A, B any](p1 Parser[A], p2 Parser[B]) Parser[struct {
	A A
	B B
}] {
	type pair = struct {
		A A
		B B
	}
	return func(c Cursor) (Cursor, pair, error) {
		c2, a, err := p1(c)
		if err != nil {
			var zero pair
			return c, zero, err
		}
		c3, b, err := p2(c2)
		if err != nil {
			var zero pair
			return c, zero, err
		}
		return c3, pair{A: a, B: b}, nil
	}
}

// Many0 repeats p zero or more times until it fails.
func Many0[T any](p Parser[T]) Parser[[]T] {
	return func(c Cursor) (Cursor, []T, error) {
		out := []T{}
		cur := c
		for {
			next, v, err := p(cur)
			if err != nil {
				return cur, out, nil
			}
			if next.Pos() == cur.Pos() {
				// Guard against infinite loops on zero-width matches.
				return cur, out, nil
			}
			out = append(out, v)
			cur = next
		}
	}
}

// Many1 requires p to match at least once.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(c Cursor) (Cursor, []T, error) {
		c2, v, err := p(c)
		if err != nil {
			var zero []T
			return c, zero, err
		}
		rest, more, _ := Many0(p)(c2)
		return rest, append([]T{v}, more...), nil
	}
}

// ManyTill repeats item until end succeeds, returning the collected items
// and end's value; end's match is consumed.
func ManyTill[T, E any](item Parser[T], end Parser[E]) Parser[struct {
	Items []T
	End   E
}] {
	type result = struct {
		Items []T
		End   E
	}
	return func(c Cursor) (Cursor, result, error) {
		out := []T{}
		cur := c
		for {
			if e2, e, err := end(cur); err == nil {
				return e2, result{Items: out, End: e}, nil
			}
			i2, v, err := item(cur)
			if err != nil {
				var zero result
				return c, zero, err
			}
			if i2.Pos() == cur.Pos() {
				var zero result
				return c, zero, failAt(cur, "end marker (zero-width item parser made no progress)")
			}
			out = append(out, v)
			cur = i2
		}
	}
}

// SeparatedList1 parses one or more item occurrences separated by sep; it
// requires at least one item, matching the grammar's separated_list1 over
// hand records.
func SeparatedList1[T, S any](item Parser[T], sep Parser[S]) Parser[[]T] {
	return func(c Cursor) (Cursor, []T, error) {
		c2, first, err := item(c)
		if err != nil {
			var zero []T
			return c, zero, err
		}
		out := []T{first}
		cur := c2
		for {
			afterSep, _, err := sep(cur)
			if err != nil {
				return cur, out, nil
			}
			next, v, err := item(afterSep)
			if err != nil {
				return cur, out, nil
			}
			out = append(out, v)
			cur = next
		}
	}
}

// TakeWhile1 consumes the longest non-empty run of bytes matching pred.
func TakeWhile1(pred func(byte) bool, what string) Parser[string] {
	return func(c Cursor) (Cursor, string, error) {
		rest := c.Rest()
		i := 0
		for i < len(rest) && pred(rest[i]) {
			i++
		}
		if i == 0 {
			return c, "", failAt(c, what)
		}
		return c.advance(i), rest[:i], nil
	}
}

// TakeWhile0 consumes the longest (possibly empty) run of bytes matching pred.
func TakeWhile0(pred func(byte) bool) Parser[string] {
	return func(c Cursor) (Cursor, string, error) {
		rest := c.Rest()
		i := 0
		for i < len(rest) && pred(rest[i]) {
			i++
		}
		return c.advance(i), rest[:i], nil
	}
}

// TakeUntil consumes everything up to (not including) the first occurrence
// of lit. Fails if lit never occurs.
func TakeUntil(lit string) Parser[string] {
	return func(c Cursor) (Cursor, string, error) {
		rest := c.Rest()
		i := strings.Index(rest, lit)
		if i < 0 {
			return c, "", failAt(c, fmt.Sprintf("text before %q", lit))
		}
		return c.advance(i), rest[:i], nil
	}
}

// RestOfLine consumes up to (not including) the next LF, or to EOF if none,
// also trimming a single trailing CR (CRLF line endings).
func RestOfLine(c Cursor) (Cursor, string, error) {
	rest := c.Rest()
	i := strings.IndexByte(rest, '\n')
	if i < 0 {
		return c.advance(len(rest)), strings.TrimSuffix(rest, "\r"), nil
	}
	return c.advance(i), strings.TrimSuffix(rest[:i], "\r"), nil
}

// Newline consumes a single line terminator, LF or CRLF.
func Newline(c Cursor) (Cursor, string, error) {
	rest := c.Rest()
	if strings.HasPrefix(rest, "\r\n") {
		return c.advance(2), "\r\n", nil
	}
	if strings.HasPrefix(rest, "\n") {
		return c.advance(1), "\n", nil
	}
	return c, "", failAt(c, "newline")
}

// BlankLine consumes a line containing only whitespace (and its
// terminator), used as the separator between hand records.
func BlankLine(c Cursor) (Cursor, string, error) {
	c2, line, err := RestOfLine(c)
	if err != nil {
		return c, "", err
	}
	if strings.TrimSpace(line) != "" {
		return c, "", failAt(c, "blank line")
	}
	if c2.AtEOF() {
		return c2, line, nil
	}
	c3, _, err := Newline(c2)
	if err != nil {
		return c, "", err
	}
	return c3, line, nil
}

// EOF succeeds only when the cursor has consumed the whole input.
func EOF(c Cursor) (Cursor, struct{}, error) {
	if c.AtEOF() {
		return c, struct{}{}, nil
	}
	return c, struct{}{}, failAt(c, "end of input")
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Digits1 consumes one or more ASCII digits.
func Digits1(c Cursor) (Cursor, string, error) {
	return TakeWhile1(isDigit, "digit")(c)
}

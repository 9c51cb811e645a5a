package parser

import "strconv"

// parseSeat parses one seat line's content (without its trailing newline):
// `Seat <n>: <name> (<stack>[, <money>€ bounty])`.
func parseSeat(c Cursor) (Cursor, Seat, error) {
	c2, _, err := Tag("Seat ")(c)
	if err != nil {
		var zero Seat
		return c, zero, err
	}
	c3, numDigits, err := Digits1(c2)
	if err != nil {
		var zero Seat
		return c, zero, err
	}
	seatNum, convErr := strconv.Atoi(numDigits)
	if convErr != nil {
		var zero Seat
		return c, zero, failAt(c, "seat number in range")
	}
	c4, _, err := Tag(": ")(c3)
	if err != nil {
		var zero Seat
		return c, zero, err
	}
	c5, name, err := TakeUntil(" (")(c4)
	if err != nil {
		var zero Seat
		return c, zero, err
	}
	c6, _, err := Tag(" (")(c5)
	if err != nil {
		var zero Seat
		return c, zero, err
	}
	c7, stack, err := parseAmount(c6)
	if err != nil {
		var zero Seat
		return c, zero, err
	}
	bountyP := Preceded(Tag(", "), Terminated(decimalMoney, Tag("€ bounty")))
	c8, bounty, _ := Opt(bountyP)(c7)
	c9, _, err := Tag(")")(c8)
	if err != nil {
		var zero Seat
		return c, zero, err
	}
	return c9, Seat{SeatNumber: seatNum, PlayerName: name, Stack: stack, Bounty: bounty}, nil
}

// parseSeatLine parses a seat line including its trailing newline.
func parseSeatLine(c Cursor) (Cursor, Seat, error) {
	return Terminated(parseSeat, Newline)(c)
}

// parseSeats parses one or more consecutive seat lines.
func parseSeats(c Cursor) (Cursor, []Seat, error) {
	return Many1(parseSeatLine)(c)
}

// Package tableid derives a logical table identity from a poker-client
// window title, grounded on the original window-manager collaborator's
// Table::from_str grammar: a fixed brand prefix, then either a
// tournament-with-table, pending-tournament, or free-text cash-game name.
package tableid

import (
	"fmt"
	"strconv"
	"strings"
)

const brandPrefix = "Winamax "

// Kind discriminates the tagged TableIdentity union.
type Kind int

const (
	CashGame Kind = iota
	Tournament
	PendingTournament
)

// TableIdentity is the tagged union produced by Parse.
type TableIdentity struct {
	Kind Kind

	Name string // valid for all kinds

	// Tournament and PendingTournament fields.
	TournamentID uint32
	TableID      uint32 // valid only when Kind == Tournament
}

// MalformedTableNameError reports a window title that does not carry the
// expected brand prefix. It is the only failure mode of Parse: once the
// prefix is stripped, the remainder always yields at least a CashGame
// identity (free text is a valid cash-game name).
type MalformedTableNameError struct {
	Title string
}

func (e *MalformedTableNameError) Error() string {
	return fmt.Sprintf("malformed table name: %q does not start with %q", e.Title, brandPrefix)
}

// Parse derives a TableIdentity from a raw window title.
func Parse(title string) (TableIdentity, error) {
	rest, ok := strings.CutPrefix(title, brandPrefix)
	if !ok {
		return TableIdentity{}, &MalformedTableNameError{Title: title}
	}

	if id, ok := parseTournament(rest); ok {
		return id, nil
	}

	name, _, _ := strings.Cut(rest, "\n")
	return TableIdentity{Kind: CashGame, Name: name}, nil
}

// parseTournament recognises "<name>(<u32>)" optionally followed by
// "(#<u32>)". It returns ok=false (never an error) when rest has no
// "(<digits>)" suffix, letting Parse fall back to the cash-game form.
func parseTournament(rest string) (TableIdentity, bool) {
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return TableIdentity{}, false
	}
	name := rest[:open]
	after := rest[open+1:]

	close := strings.IndexByte(after, ')')
	if close < 0 {
		return TableIdentity{}, false
	}
	idStr := after[:close]
	tournamentID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return TableIdentity{}, false
	}
	after = after[close+1:]

	if tableID, ok := parseTableSuffix(after); ok {
		return TableIdentity{
			Kind:         Tournament,
			Name:         name,
			TournamentID: uint32(tournamentID),
			TableID:      tableID,
		}, true
	}

	return TableIdentity{
		Kind:         PendingTournament,
		Name:         name,
		TournamentID: uint32(tournamentID),
	}, true
}

// parseTableSuffix recognises an optional "(#<u32>)" immediately following
// the tournament id.
func parseTableSuffix(rest string) (uint32, bool) {
	const open = "(#"
	if !strings.HasPrefix(rest, open) {
		return 0, false
	}
	rest = rest[len(open):]
	close := strings.IndexByte(rest, ')')
	if close < 0 {
		return 0, false
	}
	id, err := strconv.ParseUint(rest[:close], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

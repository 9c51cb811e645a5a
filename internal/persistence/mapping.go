package persistence

import "github.com/clemux/holdem-suite/internal/parser"

// flattenHand projects a parsed Hand into its three row groups, matching
// the hands/seats/actions table split of SPEC_FULL §4.5.
func flattenHand(h parser.Hand) (StoredHand, []StoredSeat, []StoredAction) {
	sh := StoredHand{
		ID:         h.HandInfo.HandID,
		HoleCard1:  h.DealtToHero.HoleCards.Card1,
		HoleCard2:  h.DealtToHero.HoleCards.Card2,
		Datetime:   h.HandInfo.Datetime,
		Button:     h.TableInfo.Button,
		MaxPlayers: h.TableInfo.MaxPlayers,
		Hero:       h.DealtToHero.PlayerName,
		Ante:       h.HandInfo.Blinds.Ante,
		SmallBlind: h.HandInfo.Blinds.SmallBlind,
		BigBlind:   h.HandInfo.Blinds.BigBlind,
		Pot:        h.Summary.Pot,
		Rake:       h.Summary.Rake,
	}

	switch h.TableInfo.TableName.Kind {
	case parser.TableTournament:
		id := h.TableInfo.TableName.TournamentID
		sh.TournamentID = &id
	case parser.TableCashGame:
		name := h.TableInfo.TableName.CashGameName
		sh.CashGameName = &name
	}

	board := h.Summary.Board
	cardPtr := func(i int) *parser.Card {
		if i >= len(board) {
			return nil
		}
		c := board[i]
		return &c
	}
	sh.Flop1, sh.Flop2, sh.Flop3 = cardPtr(0), cardPtr(1), cardPtr(2)
	sh.Turn = cardPtr(3)
	sh.River = cardPtr(4)

	revealedCards := make(map[string]parser.HoleCards, len(h.Summary.Players))
	for _, p := range h.Summary.Players {
		if p.HoleCards != nil {
			revealedCards[p.Name] = *p.HoleCards
		}
	}

	seats := make([]StoredSeat, 0, len(h.Seats))
	for _, s := range h.Seats {
		stored := StoredSeat{
			HandID:     sh.ID,
			PlayerName: s.PlayerName,
			SeatNumber: s.SeatNumber,
			Stack:      s.Stack,
			Bounty:     s.Bounty,
		}
		if hc, ok := revealedCards[s.PlayerName]; ok {
			stored.Card1, stored.Card2 = &hc.Card1, &hc.Card2
		}
		seats = append(seats, stored)
	}

	var actions []StoredAction
	for _, street := range h.Streets {
		for _, a := range street.Actions {
			// Forced-bet posts and Shows lines are not stored as action rows.
			if a.Action.Kind == parser.ActionPost || a.Action.Kind == parser.ActionShows {
				continue
			}
			sa := StoredAction{
				HandID:     sh.ID,
				PlayerName: a.PlayerName,
				ActionType: a.Action.Kind.String(),
				IsAllIn:    a.IsAllIn,
				Street:     street.StreetType.String(),
			}
			if amt, ok := actionAmount(a.Action); ok {
				sa.Amount = &amt
			}
			actions = append(actions, sa)
		}
	}

	return sh, seats, actions
}

// actionAmount extracts the single amount value an action carries, if
// any, for the actions table's nullable amount column. Raise's two
// amounts (toCall, raiseTo) collapse to the raise-to amount, the one a
// reader cares about when reconstructing pot size.
func actionAmount(a parser.ActionType) (parser.Amount, bool) {
	switch a.Kind {
	case parser.ActionPost, parser.ActionCall, parser.ActionBet:
		return a.Amount, true
	case parser.ActionRaise:
		return a.RaiseTo, true
	default:
		return parser.Amount{}, false
	}
}

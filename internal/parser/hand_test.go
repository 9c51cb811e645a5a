package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const westernFoldAroundLog = "Winamax Poker - Tournament \"WESTERN\" buyIn: 0.90€ + 0.10€ level: 7 - " +
	"HandId: #2815488303912976462-17-1684698755 - Holdem no limit (70/300/600)" +
	" - 2023/05/21 19:52:35 UTC\n" +
	"Table: 'WESTERN(1684698755)#004' 6-max (real money) Seat #3 is the button\n" +
	"Seat 1: Anonymous1 (23940, 0.45€ bounty)\n" +
	"Seat 2: Anonymous 2 (14388, 0.45€ bounty)\n" +
	"Seat 3: Anonymous 3 (20410, 0.45€ bounty)\n" +
	"Seat 4: Anonymous4 (15425, 0.45€ bounty)\n" +
	"Seat 5: WinterSound (14285, 0.45€ bounty)\n" +
	"Seat 6: Anonymous5 (109973, 1€ bounty)\n" +
	"*** ANTE/BLINDS ***\n" +
	"Anonymous5 posts ante 70\n" +
	"Anonymous1 posts ante 70\n" +
	"Anonymous 2 posts ante 70\n" +
	"Anonymous 3 posts ante 70\n" +
	"Anonymous4 posts ante 70\n" +
	"WinterSound posts ante 70\n" +
	"Anonymous5 posts small blind 300\n" +
	"Anonymous1 posts big blind 600\n" +
	"Dealt to WinterSound [6s Qh]\n" +
	"*** PRE-FLOP ***\n" +
	"Anonymous 2 folds\n" +
	"Anonymous 3 raises 750 to 1350\n" +
	"Anonymous4 folds\n" +
	"WinterSound folds\n" +
	"Anonymous5 folds\n" +
	"Anonymous1 folds\n" +
	"Anonymous 3 collected 2670 from pot\n" +
	"*** SUMMARY ***\n" +
	"Total pot 2670 | No rake\n" +
	"Seat 3: Anonymous 3 won 2670\n"

func TestParseHand_WesternTournamentFoldAround(t *testing.T) {
	c, hand, err := ParseHand(NewCursor(westernFoldAroundLog))
	require.NoError(t, err)
	require.True(t, c.AtEOF())

	require.Equal(t, GameTournament, hand.HandInfo.GameInfo.Kind)
	require.Equal(t, "WESTERN", hand.HandInfo.GameInfo.TournamentName)
	require.Equal(t, MoneyAmount(decimal.RequireFromString("0.90")), hand.HandInfo.GameInfo.BuyIn)
	require.Equal(t, MoneyAmount(decimal.RequireFromString("0.10")), hand.HandInfo.GameInfo.Rake)
	require.Equal(t, uint32(7), hand.HandInfo.GameInfo.Level)
	require.Equal(t, "2815488303912976462-17-1684698755", hand.HandInfo.HandID)
	require.NotNil(t, hand.HandInfo.Blinds.Ante)
	require.Equal(t, ChipsAmount(70), *hand.HandInfo.Blinds.Ante)
	require.Equal(t, ChipsAmount(300), hand.HandInfo.Blinds.SmallBlind)
	require.Equal(t, ChipsAmount(600), hand.HandInfo.Blinds.BigBlind)
	require.Equal(t, "2023/05/21 19:52:35 UTC", hand.HandInfo.Datetime)

	require.Equal(t, TableTournament, hand.TableInfo.TableName.Kind)
	require.Equal(t, "WESTERN", hand.TableInfo.TableName.TournamentName)
	require.Equal(t, uint64(1684698755), hand.TableInfo.TableName.TournamentID)
	require.Equal(t, uint32(4), hand.TableInfo.TableName.TableID)
	require.Equal(t, 6, hand.TableInfo.MaxPlayers)
	require.Equal(t, RealMoney, hand.TableInfo.Currency)
	require.Equal(t, 3, hand.TableInfo.Button)

	require.Len(t, hand.Seats, 6)
	require.Equal(t, "Anonymous 2", hand.Seats[1].PlayerName)
	require.Equal(t, ChipsAmount(14388), hand.Seats[1].Stack)
	require.NotNil(t, hand.Seats[1].Bounty)
	require.Equal(t, MoneyAmount(decimal.RequireFromString("0.45")), *hand.Seats[1].Bounty)
	require.Equal(t, "WinterSound", hand.Seats[4].PlayerName)

	require.Equal(t, "WinterSound", hand.DealtToHero.PlayerName)
	require.Equal(t, Card{Rank: Rank6, Suit: Spades}, hand.DealtToHero.HoleCards.Card1)
	require.Equal(t, Card{Rank: RankQ, Suit: Hearts}, hand.DealtToHero.HoleCards.Card2)

	require.Len(t, hand.Streets, 1)
	require.Equal(t, Preflop, hand.Streets[0].StreetType)
	// 6 antes + small blind + big blind + 7 preflop actions.
	require.Len(t, hand.Streets[0].Actions, 15)
	last := hand.Streets[0].Actions[len(hand.Streets[0].Actions)-1]
	require.Equal(t, "Anonymous 3", last.PlayerName)
	require.Equal(t, ActionCollect, last.Action.Kind)

	require.Equal(t, ChipsAmount(2670), hand.Summary.Pot)
	require.Nil(t, hand.Summary.Rake)
	require.Len(t, hand.Summary.Players, 1)
	require.Equal(t, "Anonymous 3", hand.Summary.Players[0].Name)
	require.Equal(t, ResultWon, hand.Summary.Players[0].Result)
	require.Equal(t, ChipsAmount(2670), hand.Summary.Players[0].WonAmount)
}

func TestParseHandSummary_ShowdownWithRakeAndBoard(t *testing.T) {
	input := "Total pot 0.30€ | Rake 0.03€\n" +
		"Board: [3s Ks Qh 2s 2c]\n" +
		"Seat 2: Player One (big blind) showed [9c Kd] and won 0.30€ with One pair : Kings\n" +
		"Seat 3: Player Two showed [Qd As] and lost with Two pairs : Queens and 2\n"

	c, summary, err := parseHandSummary(NewCursor(input))
	require.NoError(t, err)
	require.True(t, c.AtEOF())

	require.Equal(t, MoneyAmount(decimal.RequireFromString("0.30")), summary.Pot)
	require.NotNil(t, summary.Rake)
	require.Equal(t, MoneyAmount(decimal.RequireFromString("0.03")), *summary.Rake)
	require.Equal(t, []Card{
		{Rank: Rank3, Suit: Spades},
		{Rank: RankK, Suit: Spades},
		{Rank: RankQ, Suit: Hearts},
		{Rank: Rank2, Suit: Spades},
		{Rank: Rank2, Suit: Clubs},
	}, summary.Board)

	require.Len(t, summary.Players, 2)

	p1 := summary.Players[0]
	require.Equal(t, 2, p1.Seat)
	require.Equal(t, "Player One", p1.Name)
	require.Equal(t, ResultWon, p1.Result)
	require.Equal(t, MoneyAmount(decimal.RequireFromString("0.30")), p1.WonAmount)
	require.NotNil(t, p1.HoleCards)
	require.Equal(t, Card{Rank: Rank9, Suit: Clubs}, p1.HoleCards.Card1)
	require.Equal(t, Card{Rank: RankK, Suit: Diamonds}, p1.HoleCards.Card2)
	require.NotNil(t, p1.HandCategory)
	require.Equal(t, Pair, p1.HandCategory.Kind)
	require.Equal(t, RankK, p1.HandCategory.High)

	p2 := summary.Players[1]
	require.Equal(t, 3, p2.Seat)
	require.Equal(t, "Player Two", p2.Name)
	require.Equal(t, ResultLost, p2.Result)
	require.NotNil(t, p2.HoleCards)
	require.Equal(t, Card{Rank: RankQ, Suit: Diamonds}, p2.HoleCards.Card1)
	require.Equal(t, Card{Rank: RankA, Suit: Spades}, p2.HoleCards.Card2)
	require.NotNil(t, p2.HandCategory)
	require.Equal(t, TwoPair, p2.HandCategory.Kind)
	require.Equal(t, RankQ, p2.HandCategory.High)
	require.NotNil(t, p2.HandCategory.Secondary)
	require.Equal(t, Rank2, *p2.HandCategory.Secondary)
}

func TestParseHands_MultipleRecordsSeparatedByBlankLines(t *testing.T) {
	text := westernFoldAroundLog + "\n" + westernFoldAroundLog
	hands, err := ParseHands(text)
	require.NoError(t, err)
	require.Len(t, hands, 2)
	require.Equal(t, hands[0].HandInfo.HandID, hands[1].HandInfo.HandID)
}

package summaryparser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	gp "github.com/clemux/holdem-suite/internal/parser"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParsePokerType(t *testing.T) {
	_, got, err := parsePokerType(gp.NewCursor("holdem-no-limit"))
	require.NoError(t, err)
	require.Equal(t, HoldemNoLimit, got)
}

func TestParseLevel(t *testing.T) {
	_, got, err := parseLevel(gp.NewCursor("10-20:0:600:holdem-no-limit"))
	require.NoError(t, err)
	require.Equal(t, Level{SmallBlind: 10, BigBlind: 20, Ante: 0, Seconds: 600, PokerType: HoldemNoLimit}, got)
}

func TestParseBuyIn(t *testing.T) {
	_, got, err := parseBuyIn(gp.NewCursor("0.45€ + 0.05€"))
	require.NoError(t, err)
	require.True(t, dec("0.45").Equal(got.BuyIn))
	require.True(t, dec("0.05").Equal(got.Rake))
	require.Nil(t, got.Bounty)
}

func TestParseBuyIn_Bounty(t *testing.T) {
	_, got, err := parseBuyIn(gp.NewCursor("0.60€ + 0.30€ + 0.10€"))
	require.NoError(t, err)
	require.True(t, dec("0.60").Equal(got.BuyIn))
	require.True(t, dec("0.30").Equal(got.Rake))
	require.NotNil(t, got.Bounty)
	require.True(t, dec("0.10").Equal(*got.Bounty))
}

func TestParseTournamentType(t *testing.T) {
	_, sitngo, err := parseTournamentType(gp.NewCursor("sitngo"))
	require.NoError(t, err)
	require.Equal(t, TournamentType{Kind: Sitngo}, sitngo)

	_, tt, err := parseTournamentType(gp.NewCursor("tt"))
	require.NoError(t, err)
	require.Equal(t, TournamentType{Kind: Mtt}, tt)
}

const sampleSummary = "Winamax Poker - Tournament summary : MYSTERY KO(669464094)\n" +
	"Player : WinterSound\n" +
	"Buy-In : 0.60€ + 0.30€ + 0.10€\n" +
	"Registered players : 160\n" +
	"Mode : tt\n" +
	"Type : knockout\n" +
	"Speed : normal\n" +
	"Flight ID : 0\n" +
	"Levels : Levels : [100-200:25:2100:holdem-no-limit,125-250:30:420:holdem-no-limit]\n" +
	"Prizepool : 198.70€\n" +
	"Tournament started 2023/07/08 11:30:00 UTC\n" +
	"You played 20min 52s \n" +
	"You finished in 145th place\n" +
	"You won 1.00€\n"

func TestParse_TournamentSummary(t *testing.T) {
	got, err := Parse(sampleSummary)
	require.NoError(t, err)

	require.Equal(t, "MYSTERY KO", got.Name)
	require.Equal(t, uint32(669464094), got.ID)
	require.Equal(t, "WinterSound", got.Hero)
	require.True(t, dec("0.60").Equal(got.BuyIn.BuyIn))
	require.True(t, dec("0.30").Equal(got.BuyIn.Rake))
	require.NotNil(t, got.BuyIn.Bounty)
	require.True(t, dec("0.10").Equal(*got.BuyIn.Bounty))
	require.Equal(t, uint32(160), got.Entries)
	require.Equal(t, "tt", got.Mode)
	require.Equal(t, TournamentType{Kind: Knockout}, got.TournamentType)
	require.Equal(t, "normal", got.Speed)
	require.Equal(t, uint32(0), got.FlightID)
	require.Len(t, got.Levels, 2)
	require.Equal(t, Level{SmallBlind: 100, BigBlind: 200, Ante: 25, Seconds: 2100, PokerType: HoldemNoLimit}, got.Levels[0])
	require.Equal(t, Level{SmallBlind: 125, BigBlind: 250, Ante: 30, Seconds: 420, PokerType: HoldemNoLimit}, got.Levels[1])
	require.True(t, dec("198.70").Equal(got.Prizepool))
	require.Equal(t, "2023/07/08 11:30:00 UTC", got.StartDate)
	require.Equal(t, "20min 52s ", got.PlayTime)
	require.Equal(t, uint32(145), got.FinishPlace)
	require.NotNil(t, got.Won)
	require.True(t, dec("1.00").Equal(*got.Won))
}

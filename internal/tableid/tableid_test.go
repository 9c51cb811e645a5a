package tableid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_TournamentWithTable(t *testing.T) {
	got, err := Parse("Winamax Monster Stack(676539671)(#0001)")
	require.NoError(t, err)
	require.Equal(t, TableIdentity{Kind: Tournament, Name: "Monster Stack", TournamentID: 676539671, TableID: 1}, got)
}

func TestParse_CashGame(t *testing.T) {
	got, err := Parse("Winamax Wichita 05")
	require.NoError(t, err)
	require.Equal(t, TableIdentity{Kind: CashGame, Name: "Wichita 05"}, got)
}

func TestParse_PendingTournament(t *testing.T) {
	got, err := Parse("Winamax WESTERN(655531954)")
	require.NoError(t, err)
	require.Equal(t, TableIdentity{Kind: PendingTournament, Name: "WESTERN", TournamentID: 655531954}, got)
}

func TestParse_MissingBrandPrefix(t *testing.T) {
	_, err := Parse("PokerStars Table 5")
	require.Error(t, err)
	var malformed *MalformedTableNameError
	require.True(t, errors.As(err, &malformed))
}

package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clemux/holdem-suite/internal/parser"
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

func newTestSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "holdem-suite-test.db")
	repo, err := NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestInsertHands_PreflopFoldAroundToRaiser(t *testing.T) {
	hands, err := parser.ParseHands(westernFoldAroundLog)
	require.NoError(t, err)
	require.Len(t, hands, 1)

	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	n, err := repo.InsertHands(ctx, hands)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	all, err := repo.GetHands(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	seats, err := repo.GetSeats(ctx, all[0].ID)
	require.NoError(t, err)
	require.Len(t, seats, 6)

	actions, err := repo.GetActions(ctx, all[0].ID)
	require.NoError(t, err)
	require.Len(t, actions, 7) // 1 raise + 5 folds + 1 collect; InsertHands persists Collect

	filtered, err := repo.GetActionsForHand(ctx, all[0].ID)
	require.NoError(t, err)
	require.Len(t, filtered, 6) // GetActionsForHand hides the collect row
}

func TestInsertHands_Idempotent(t *testing.T) {
	hands, err := parser.ParseHands(westernFoldAroundLog)
	require.NoError(t, err)

	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	first, err := repo.InsertHands(ctx, hands)
	require.NoError(t, err)
	require.Equal(t, 1, first)

	second, err := repo.InsertHands(ctx, hands)
	require.NoError(t, err)
	require.Equal(t, 0, second)

	hs, err := repo.GetHands(ctx)
	require.NoError(t, err)
	require.Len(t, hs, 1)

	seats, err := repo.GetSeats(ctx, hs[0].ID)
	require.NoError(t, err)
	require.Len(t, seats, 6)
}

func TestGetLatestHand_ByTournament(t *testing.T) {
	hands, err := parser.ParseHands(westernFoldAroundLog)
	require.NoError(t, err)

	repo := newTestSQLiteRepo(t)
	ctx := context.Background()
	_, err = repo.InsertHands(ctx, hands)
	require.NoError(t, err)

	tournamentID := hands[0].TableInfo.TableName.TournamentID
	got, err := repo.GetLatestHand(ctx, TableRef{TournamentID: &tournamentID})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, hands[0].HandInfo.HandID, got.ID)
}

func TestGetPlayersForTable(t *testing.T) {
	hands, err := parser.ParseHands(westernFoldAroundLog)
	require.NoError(t, err)

	repo := newTestSQLiteRepo(t)
	ctx := context.Background()
	_, err = repo.InsertHands(ctx, hands)
	require.NoError(t, err)

	tournamentID := hands[0].TableInfo.TableName.TournamentID
	players, err := repo.GetPlayersForTable(ctx, TableRef{TournamentID: &tournamentID})
	require.NoError(t, err)
	require.Len(t, players, 6)
}

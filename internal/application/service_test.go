package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clemux/holdem-suite/internal/persistence"
)

const oneHandLog = "Winamax Poker - Tournament \"WESTERN\" buyIn: 0.90€ + 0.10€ level: 7 - " +
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

func TestIngestFile_HandHistory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "20230521_WESTERN.txt")
	require.NoError(t, os.WriteFile(path, []byte(oneHandLog), 0o600))

	repo := persistence.NewMemoryRepository()
	svc := NewService(repo, nil)

	sub, unsubscribe := svc.Notifier().Subscribe()
	defer unsubscribe()

	n, err := svc.IngestFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	hands, err := repo.GetHands(context.Background())
	require.NoError(t, err)
	require.Len(t, hands, 1)

	select {
	case msg := <-sub:
		require.Equal(t, DataChanged, msg.Kind)
	default:
		t.Fatal("expected a DataChanged notification")
	}
}

func TestIngestFile_IsIdempotent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "20230521_WESTERN.txt")
	require.NoError(t, os.WriteFile(path, []byte(oneHandLog), 0o600))

	repo := persistence.NewMemoryRepository()
	svc := NewService(repo, nil)

	n1, err := svc.IngestFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, n1)

	n2, err := svc.IngestFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 0, n2)

	hands, err := repo.GetHands(context.Background())
	require.NoError(t, err)
	require.Len(t, hands, 1)
}

func TestIngestFile_MalformedHandHistoryIsSkippedNotFatal(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "garbage.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a poker hand history\n"), 0o600))

	repo := persistence.NewMemoryRepository()
	svc := NewService(repo, nil)

	n, err := svc.IngestFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	hands, err := repo.GetHands(context.Background())
	require.NoError(t, err)
	require.Empty(t, hands)
}

func TestIngestFile_ClassifiesBySummarySubstring(t *testing.T) {
	tmp := t.TempDir()
	// A path containing "summary" is dispatched to the summary grammar even
	// though this particular content won't parse as one; the point is that
	// it must NOT be handed to the hand-history parser.
	path := filepath.Join(tmp, "20230521_summary.txt")
	require.NoError(t, os.WriteFile(path, []byte(oneHandLog), 0o600))

	repo := persistence.NewMemoryRepository()
	svc := NewService(repo, nil)

	n, err := svc.IngestFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	hands, err := repo.GetHands(context.Background())
	require.NoError(t, err)
	require.Empty(t, hands, "hand-shaped content under a summary path must not be parsed as a hand")
}

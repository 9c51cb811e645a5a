package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/clemux/holdem-suite/internal/parser"
	"github.com/clemux/holdem-suite/internal/summaryparser"
)

// MemoryRepository is an in-process Repository used as a fallback when
// opening the SQLite store fails, exactly as the teacher's main.go falls
// back to an in-memory store rather than refusing to start.
type MemoryRepository struct {
	mu        sync.RWMutex
	hands     map[string]StoredHand
	seats     map[string][]StoredSeat
	actions   map[string][]StoredAction
	nextAct   int64
	summaries map[uint32]StoredSummary
	order     []string // hand ids in first-insert order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		hands:     make(map[string]StoredHand),
		seats:     make(map[string][]StoredSeat),
		actions:   make(map[string][]StoredAction),
		summaries: make(map[uint32]StoredSummary),
	}
}

func (r *MemoryRepository) Close() error { return nil }

func (r *MemoryRepository) InsertHands(_ context.Context, hands []parser.Hand) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	for _, h := range hands {
		sh, seats, actions := flattenHand(h)
		if _, exists := r.hands[sh.ID]; exists {
			continue
		}
		r.hands[sh.ID] = sh
		r.order = append(r.order, sh.ID)
		r.seats[sh.ID] = seats
		for i := range actions {
			r.nextAct++
			actions[i].ID = r.nextAct
		}
		r.actions[sh.ID] = actions
		inserted++
	}
	return inserted, nil
}

func (r *MemoryRepository) InsertSummary(_ context.Context, s summaryparser.TournamentSummary) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.summaries[s.ID]; exists {
		return false, nil
	}
	won := s.Won
	r.summaries[s.ID] = StoredSummary{
		ID: s.ID, Name: s.Name, BuyIn: s.BuyIn.BuyIn, Date: s.StartDate, PlayTime: s.PlayTime,
		Entries: s.Entries, Mode: s.Mode, TournamentType: tournamentTypeText(s.TournamentType),
		Speed: s.Speed, FinishPlace: s.FinishPlace, Won: won,
	}
	return true, nil
}

func (r *MemoryRepository) GetSummaries(_ context.Context) ([]StoredSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]StoredSummary, 0, len(r.summaries))
	for _, s := range r.summaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *MemoryRepository) GetHands(_ context.Context) ([]StoredHand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handsInOrder(func(StoredHand) bool { return true }), nil
}

func (r *MemoryRepository) handsInOrder(keep func(StoredHand) bool) []StoredHand {
	out := make([]StoredHand, 0, len(r.order))
	for _, id := range r.order {
		h := r.hands[id]
		if keep(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Datetime < out[j].Datetime })
	return out
}

func (r *MemoryRepository) GetHandsForTournament(_ context.Context, tournamentID uint64) ([]StoredHand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handsInOrder(func(h StoredHand) bool {
		return h.TournamentID != nil && *h.TournamentID == tournamentID
	}), nil
}

func (r *MemoryRepository) GetHandsForPlayer(_ context.Context, playerName string) ([]HandWithActions, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hands := r.handsInOrder(func(h StoredHand) bool {
		for _, s := range r.seats[h.ID] {
			if s.PlayerName == playerName {
				return true
			}
		}
		return false
	})
	out := make([]HandWithActions, 0, len(hands))
	for _, h := range hands {
		out = append(out, HandWithActions{Hand: h, Actions: append([]StoredAction(nil), r.actions[h.ID]...)})
	}
	return out, nil
}

func (r *MemoryRepository) GetLatestHand(_ context.Context, table TableRef) (*StoredHand, error) {
	if err := validateTableRef(table); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var match []StoredHand
	if table.TournamentID != nil {
		match = r.handsInOrder(func(h StoredHand) bool { return h.TournamentID != nil && *h.TournamentID == *table.TournamentID })
	} else {
		match = r.handsInOrder(func(h StoredHand) bool { return h.CashGameName != nil && *h.CashGameName == *table.CashGameName })
	}
	if len(match) == 0 {
		return nil, nil
	}
	latest := match[len(match)-1]
	return &latest, nil
}

func (r *MemoryRepository) GetSeats(_ context.Context, handID string) ([]StoredSeat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seats := append([]StoredSeat(nil), r.seats[handID]...)
	sort.Slice(seats, func(i, j int) bool { return seats[i].SeatNumber < seats[j].SeatNumber })
	return seats, nil
}

func (r *MemoryRepository) GetActions(_ context.Context, handID string) ([]StoredAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]StoredAction(nil), r.actions[handID]...), nil
}

func (r *MemoryRepository) GetActionsForHand(ctx context.Context, handID string) ([]StoredAction, error) {
	all, err := r.GetActions(ctx, handID)
	if err != nil {
		return nil, err
	}
	out := make([]StoredAction, 0, len(all))
	for _, a := range all {
		if a.ActionType == "collect" {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *MemoryRepository) GetPlayers(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]struct{}{}
	for _, seats := range r.seats {
		for _, s := range seats {
			seen[s.PlayerName] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (r *MemoryRepository) GetPlayersForTable(ctx context.Context, table TableRef) ([]PlayerSeat, error) {
	latest, err := r.GetLatestHand(ctx, table)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	seats, err := r.GetSeats(ctx, latest.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PlayerSeat, 0, len(seats))
	for _, s := range seats {
		out = append(out, PlayerSeat{PlayerName: s.PlayerName, SeatNumber: s.SeatNumber})
	}
	return out, nil
}

package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clemux/holdem-suite/internal/parser"
)

func action(player string, kind parser.ActionKind) parser.Action {
	return parser.Action{PlayerName: player, Action: parser.ActionType{Kind: kind}}
}

func TestComputeHandMetrics_SixPlayerPreflop(t *testing.T) {
	hand := parser.Hand{
		Streets: []parser.Street{
			{
				StreetType: parser.Preflop,
				Actions: []parser.Action{
					action("P1", parser.ActionRaise),
					action("P2", parser.ActionCall),
					action("P3", parser.ActionFold),
					action("P4", parser.ActionRaise),
					action("P1", parser.ActionFold),
					action("P2", parser.ActionFold),
				},
			},
			{
				StreetType: parser.Flop,
				Actions: []parser.Action{
					action("P4", parser.ActionBet),
				},
			},
		},
	}

	got := ComputeHandMetrics(hand)

	require.Equal(t, PlayerMetrics{VPIP: true, PFR: true}, got["P1"])
	require.Equal(t, PlayerMetrics{VPIP: true}, got["P2"])
	require.Equal(t, PlayerMetrics{}, got["P3"])
	require.Equal(t, PlayerMetrics{VPIP: true, PFR: true, ThreeBet: true}, got["P4"])
}

func TestComputeHandMetrics_OpenLimp(t *testing.T) {
	hand := parser.Hand{
		Streets: []parser.Street{
			{
				StreetType: parser.Preflop,
				Actions: []parser.Action{
					action("P1", parser.ActionCall),
					action("P2", parser.ActionFold),
				},
			},
		},
	}
	got := ComputeHandMetrics(hand)
	require.True(t, got["P1"].OpenLimp)
	require.True(t, got["P1"].VPIP)
}

func TestComputeHandMetrics_IgnoresPostflopActions(t *testing.T) {
	withPostflop := parser.Hand{
		Streets: []parser.Street{
			{StreetType: parser.Preflop, Actions: []parser.Action{action("P1", parser.ActionCall)}},
			{StreetType: parser.Flop, Actions: []parser.Action{action("P1", parser.ActionRaise)}},
		},
	}
	withoutPostflop := parser.Hand{
		Streets: []parser.Street{
			{StreetType: parser.Preflop, Actions: []parser.Action{action("P1", parser.ActionCall)}},
		},
	}
	require.Equal(t, ComputeHandMetrics(withoutPostflop), ComputeHandMetrics(withPostflop))
}

func TestAggregator_Player(t *testing.T) {
	agg := NewAggregator()
	agg.AddHand([]string{"P1", "P2"}, map[string]PlayerMetrics{
		"P1": {VPIP: true, PFR: true},
	})
	agg.AddHand([]string{"P1", "P2"}, map[string]PlayerMetrics{})

	p1 := agg.Player("P1")
	require.Equal(t, 2, p1.NbHands)
	require.InDelta(t, 0.5, p1.VPIP, 1e-9)
	require.InDelta(t, 0.5, p1.PFR, 1e-9)

	require.Equal(t, PlayerAggregate{}, agg.Player("unknown"))
}

// Package metrics computes per-hand and per-player preflop behavioural
// flags (VPIP, PFR, 3-bet, open-limp) from parsed hands, following the
// aggregation idiom of the teacher's stats accumulator: a single
// left-to-right pass over actions feeding per-player counters, later
// turned into frequencies.
package metrics

import "github.com/clemux/holdem-suite/internal/parser"

// PlayerMetrics is one player's four preflop behavioural flags for a
// single hand.
type PlayerMetrics struct {
	VPIP     bool
	PFR      bool
	ThreeBet bool
	OpenLimp bool
}

// ComputeHandMetrics scans a hand's preflop actions left to right and
// derives PlayerMetrics for every player who acted preflop. Players who
// never act preflop are absent from the result; callers that need a
// complete roster should default missing entries to the zero value.
func ComputeHandMetrics(h parser.Hand) map[string]PlayerMetrics {
	out := map[string]PlayerMetrics{}

	var someoneLimped, someoneRaised, someoneThreeBet bool

	for _, street := range h.Streets {
		if street.StreetType != parser.Preflop {
			break
		}
		for _, a := range street.Actions {
			pm := out[a.PlayerName]
			switch a.Action.Kind {
			case parser.ActionRaise:
				if someoneRaised && !someoneThreeBet {
					pm.ThreeBet = true
					someoneThreeBet = true
				}
				someoneRaised = true
				pm.VPIP = true
				pm.PFR = true
			case parser.ActionCall:
				pm.VPIP = true
				if !someoneRaised && !someoneLimped {
					pm.OpenLimp = true
					someoneLimped = true
				}
			case parser.ActionFold:
				// no effect
			default:
				// Post, Check, Bet, Collect, Shows carry no VPIP/PFR/3-bet/
				// open-limp signal under this algorithm.
			}
			out[a.PlayerName] = pm
		}
	}

	return out
}

// PlayerAggregate is one player's metric frequencies across every hand
// they appeared in (joined via Seats), plus the hand count the
// frequencies were computed over.
type PlayerAggregate struct {
	NbHands  int
	VPIP     float64
	PFR      float64
	ThreeBet float64
	OpenLimp float64
}

// Aggregator accumulates per-player PlayerMetrics across hands and
// reduces them to frequencies on demand.
type Aggregator struct {
	hands map[string]int
	vpip  map[string]int
	pfr   map[string]int
	tb    map[string]int
	ol    map[string]int
}

// NewAggregator returns an empty cross-hand metrics accumulator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		hands: map[string]int{},
		vpip:  map[string]int{},
		pfr:   map[string]int{},
		tb:    map[string]int{},
		ol:    map[string]int{},
	}
}

// AddHand folds one hand's roster and preflop metrics into the
// aggregator. players is every seat's player name for the hand, so that
// NbHands counts hand participation regardless of whether the player
// acted preflop.
func (agg *Aggregator) AddHand(players []string, perPlayer map[string]PlayerMetrics) {
	for _, name := range players {
		agg.hands[name]++
		pm := perPlayer[name]
		if pm.VPIP {
			agg.vpip[name]++
		}
		if pm.PFR {
			agg.pfr[name]++
		}
		if pm.ThreeBet {
			agg.tb[name]++
		}
		if pm.OpenLimp {
			agg.ol[name]++
		}
	}
}

// Player returns the accumulated frequencies for name. A player never
// seen returns the zero PlayerAggregate.
func (agg *Aggregator) Player(name string) PlayerAggregate {
	n := agg.hands[name]
	if n == 0 {
		return PlayerAggregate{}
	}
	return PlayerAggregate{
		NbHands:  n,
		VPIP:     float64(agg.vpip[name]) / float64(n),
		PFR:      float64(agg.pfr[name]) / float64(n),
		ThreeBet: float64(agg.tb[name]) / float64(n),
		OpenLimp: float64(agg.ol[name]) / float64(n),
	}
}

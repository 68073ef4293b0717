package schedule

import (
	"fmt"
	"sort"

	deepcopy "github.com/tiendc/go-deepcopy"
)

// ReasonNoPairings is the fixed failure reason when demand existed but a
// full pass placed nothing.
const ReasonNoPairings = "no valid pairings"

// Result is the outcome of one generation run. Constraint shortfalls are
// never surfaced as errors: a pass that placed some but not all games is
// a success with Unscheduled > 0, and only a pass that placed nothing
// despite demand fails.
type Result struct {
	OK           bool
	Reason       string
	NeededOOC    int // out-of-conference games wanted before the pass
	ScheduledOOC int // games placed by this pass
	Unscheduled  int // games still wanted after the pass
	Teams        []*Team
}

// Generate fills open weeks with out-of-conference games. When
// avoidWeekZero is set, week 0 is visited last in the same pass, so it is
// used only for pairings that found no other week; it is deferred, not
// excluded. The matcher works on a deep copy of teams, so a failed run
// leaves the caller's slice untouched; on success Result.Teams is the
// mutated copy.
//
// Not safe for concurrent calls on the same team collection.
func Generate(teams []*Team, avoidWeekZero bool) (*Result, error) {
	var working []*Team
	if err := deepcopy.Copy(&working, teams); err != nil {
		return nil, fmt.Errorf("copying teams: %w", err)
	}

	states, _ := buildStates(working)

	needed := 0
	for _, s := range states {
		needed += s.oocRemaining
	}

	m := &matcher{states: states}
	for _, w := range weekOrder(avoidWeekZero) {
		m.matchWeek(w)
	}

	remaining := 0
	for _, s := range states {
		remaining += s.oocRemaining
	}

	res := &Result{
		NeededOOC:    needed,
		ScheduledOOC: needed - remaining,
		Unscheduled:  remaining,
	}
	if needed > 0 && res.ScheduledOOC == 0 {
		res.Reason = ReasonNoPairings
		res.Teams = teams
		return res, nil
	}
	res.OK = true
	res.Teams = working
	return res, nil
}

// weekOrder returns the order the matcher visits weeks in.
func weekOrder(avoidWeekZero bool) []int {
	order := make([]int, 0, NumWeeks)
	if avoidWeekZero {
		for w := 1; w < NumWeeks; w++ {
			order = append(order, w)
		}
		return append(order, 0)
	}
	for w := 0; w < NumWeeks; w++ {
		order = append(order, w)
	}
	return order
}

type matcher struct {
	states []*teamState
}

// matchWeek pairs off eligible teams for one week. Teams with the fewest
// open weeks are served first; within that, teams needing more games.
// The stable sort keeps remaining ties in input order, so output is a
// pure function of input order and team names. Greedy, single pass:
// nothing placed here is ever revisited.
func (m *matcher) matchWeek(w int) {
	var eligible []*teamState
	for _, s := range m.states {
		if s.eligible(w) {
			eligible = append(eligible, s)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if len(eligible[i].available) != len(eligible[j].available) {
			return len(eligible[i].available) < len(eligible[j].available)
		}
		return eligible[i].oocRemaining > eligible[j].oocRemaining
	})

	consumed := make(map[string]bool)
	for _, t := range eligible {
		if consumed[t.key] {
			continue
		}
		opp := bestOpponent(t, eligible, consumed)
		if opp == nil {
			continue
		}
		proposePlacement(t, opp, w).commit()
		consumed[t.key] = true
		consumed[opp.key] = true
	}
}

// bestOpponent picks the most constrained feasible opponent for t this
// week, or nil when none exists. Same scarcity-then-need ordering as the
// outer loop, with the normalized key as the final tie-break.
func bestOpponent(t *teamState, eligible []*teamState, consumed map[string]bool) *teamState {
	var best *teamState
	for _, o := range eligible {
		if consumed[o.key] || !canPair(t, o) {
			continue
		}
		if best == nil || opponentLess(o, best) {
			best = o
		}
	}
	return best
}

func opponentLess(a, b *teamState) bool {
	if len(a.available) != len(b.available) {
		return len(a.available) < len(b.available)
	}
	if a.oocRemaining != b.oocRemaining {
		return a.oocRemaining > b.oocRemaining
	}
	return a.key < b.key
}

// canPair decides whether two teams may be matched at all, ignoring the
// week. Results go stale the moment either side mutates; never cache
// across placements.
func canPair(a, b *teamState) bool {
	return a.key != b.key &&
		a.conference != b.conference &&
		a.oocRemaining > 0 && b.oocRemaining > 0 &&
		a.totalGames < MaxGames && b.totalGames < MaxGames &&
		!a.played[b.key] && !b.played[a.key]
}

// assignSides picks the home team: the side with fewer home games hosts;
// on a tie the side with more away games hosts; on a full tie the smaller
// key hosts so identical input always yields identical output. Each
// placement nudges both teams toward a six-home slate; there is no global
// balance guarantee.
func assignSides(a, b *teamState) (home, away *teamState) {
	switch {
	case a.homeGames != b.homeGames:
		if a.homeGames < b.homeGames {
			return a, b
		}
		return b, a
	case a.awayGames != b.awayGames:
		if a.awayGames > b.awayGames {
			return a, b
		}
		return b, a
	case a.key < b.key:
		return a, b
	}
	return b, a
}

// placement is a matchup held ready to apply to both sides.
type placement struct {
	home, away *teamState
	week       int
}

func proposePlacement(a, b *teamState, w int) placement {
	home, away := assignSides(a, b)
	return placement{home: home, away: away, week: w}
}

// commit writes the game onto both teams' cards and updates both states.
// Both sides change together; there is no partial application.
func (p placement) commit() {
	p.home.team.Weeks[p.week] = WeekSlot{Kind: SlotOOC, Opponent: p.away.team.Name}
	p.away.team.Weeks[p.week] = WeekSlot{Kind: SlotOOC, Opponent: p.home.team.Name, Away: true}

	p.home.totalGames++
	p.home.homeGames++
	p.away.totalGames++
	p.away.awayGames++
	p.home.oocRemaining--
	p.away.oocRemaining--
	p.home.played[p.away.key] = true
	p.away.played[p.home.key] = true
	p.home.dropWeek(p.week)
	p.away.dropWeek(p.week)
}

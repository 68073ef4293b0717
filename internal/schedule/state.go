package schedule

// teamState is the mutable scheduling view of one team, owned by a single
// run. Counters and sets are derived once by buildStates and kept in step
// with every placement; oocRemaining only falls and totalGames only rises
// during a pass.
type teamState struct {
	team         *Team
	key          string
	conference   string
	totalGames   int
	homeGames    int
	awayGames    int
	played       map[string]bool
	available    []int // week indices still open, ascending
	oocRemaining int
}

// buildStates derives the scheduling state for every team plus a lookup
// keyed by normalized name. Locked and previously generated
// out-of-conference games both reduce the remaining need and both record
// their opponent as played, so re-running on a generated schedule asks
// for nothing new. Malformed input (duplicate names, self-play) is the
// upstream validator's problem, not handled here.
func buildStates(teams []*Team) ([]*teamState, map[string]*teamState) {
	states := make([]*teamState, 0, len(teams))
	byKey := make(map[string]*teamState, len(teams))

	for _, t := range teams {
		s := &teamState{
			team:       t,
			key:        Key(t.Name),
			conference: t.Conference,
			played:     make(map[string]bool),
		}

		oocOnCard := 0
		for w, slot := range t.Weeks {
			if slot.IsOpen() {
				s.available = append(s.available, w)
			}
			if slot.IsGame() {
				s.totalGames++
				if slot.Away {
					s.awayGames++
				} else {
					s.homeGames++
				}
			}
			if slot.Kind == SlotLockedOOC || slot.Kind == SlotOOC {
				oocOnCard++
				s.played[Key(slot.Opponent)] = true
			}
		}

		s.oocRemaining = t.OOCNeeded - oocOnCard
		if s.oocRemaining < 0 {
			s.oocRemaining = 0
		}

		states = append(states, s)
		byKey[s.key] = s
	}

	return states, byKey
}

func (s *teamState) hasWeek(w int) bool {
	for _, a := range s.available {
		if a == w {
			return true
		}
	}
	return false
}

func (s *teamState) dropWeek(w int) {
	for i, a := range s.available {
		if a == w {
			s.available = append(s.available[:i], s.available[i+1:]...)
			return
		}
	}
}

// eligible reports whether the team can still take a game in week w.
func (s *teamState) eligible(w int) bool {
	return s.oocRemaining > 0 && s.totalGames < MaxGames && s.hasWeek(w)
}

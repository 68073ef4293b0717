package schedule

// maxByes caps how many byes one team may accumulate.
const maxByes = 3

// DistributeByes converts leftover empty slots into byes after the
// matcher has run. Rounds proceed team-by-team: in round r a team
// receives its r-th bye if it has fewer than r (and fewer than maxByes),
// so byes spread evenly instead of piling onto whichever team happens to
// have open weeks. Only empty slots convert; pre-existing byes count
// against the cap.
//
// Non-week-0 slots are always preferred, but a team whose only remaining
// empty slot is week 0 gets its bye there even when week-0 avoidance was
// requested. The fallback wins over the flag; callers should not assume
// week 0 stays clear of byes.
func DistributeByes(teams []*Team, avoidWeekZero bool) {
	type byeState struct {
		team     *Team
		byes     int
		open     []int // non-week-0 empty slots, ascending
		weekZero []int // the week-0 empty slot, if any
	}

	states := make([]*byeState, 0, len(teams))
	for _, t := range teams {
		s := &byeState{team: t}
		for w, slot := range t.Weeks {
			switch {
			case slot.Kind == SlotBye:
				s.byes++
			case slot.Kind != SlotEmpty:
			case w == 0:
				s.weekZero = append(s.weekZero, w)
			default:
				s.open = append(s.open, w)
			}
		}
		states = append(states, s)
	}

	for round := 1; round <= maxByes; round++ {
		for _, s := range states {
			if s.byes >= round || s.byes >= maxByes {
				continue
			}
			var w int
			switch {
			case len(s.open) > 0:
				w, s.open = s.open[0], s.open[1:]
			case len(s.weekZero) > 0:
				w, s.weekZero = s.weekZero[0], s.weekZero[1:]
			default:
				continue
			}
			s.team.Weeks[w] = WeekSlot{Kind: SlotBye}
			s.byes++
		}
	}
}

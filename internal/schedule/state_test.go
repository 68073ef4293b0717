package schedule

import "testing"

func TestBuildStatesCounts(t *testing.T) {
	team := &Team{Name: "Akron", Conference: "MAC", OOCNeeded: 3}
	team.Weeks[0] = WeekSlot{Kind: SlotConference, Opponent: "Ohio"}
	team.Weeks[1] = WeekSlot{Kind: SlotConference, Opponent: "Toledo", Away: true}
	team.Weeks[2] = WeekSlot{Kind: SlotLockedOOC, Opponent: "Wildcat", Away: true}
	team.Weeks[3] = WeekSlot{Kind: SlotBye}

	states, byKey := buildStates([]*Team{team})
	s := states[0]

	if byKey["akron"] != s {
		t.Errorf("lookup by normalized name failed")
	}
	if s.totalGames != 3 {
		t.Errorf("totalGames = %d, want 3", s.totalGames)
	}
	if s.homeGames != 1 || s.awayGames != 2 {
		t.Errorf("home/away = %d/%d, want 1/2", s.homeGames, s.awayGames)
	}
	if !s.played["wildcat"] {
		t.Errorf("locked opponent not in played set: %v", s.played)
	}
	if s.oocRemaining != 2 {
		t.Errorf("oocRemaining = %d, want 2", s.oocRemaining)
	}

	// weeks 4-13 open; the bye at week 3 is not schedulable
	want := []int{4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	if len(s.available) != len(want) {
		t.Fatalf("available = %v, want %v", s.available, want)
	}
	for i, w := range want {
		if s.available[i] != w {
			t.Fatalf("available = %v, want %v", s.available, want)
		}
	}
}

func TestBuildStatesLockedGameSatisfiesNeed(t *testing.T) {
	team := &Team{Name: "Akron", Conference: "MAC", OOCNeeded: 1}
	team.Weeks[5] = WeekSlot{Kind: SlotLockedOOC, Opponent: "Samford"}

	states, _ := buildStates([]*Team{team})
	if got := states[0].oocRemaining; got != 0 {
		t.Errorf("oocRemaining = %d, want 0", got)
	}
}

func TestBuildStatesNeedNeverNegative(t *testing.T) {
	team := &Team{Name: "Akron", Conference: "MAC", OOCNeeded: 1}
	team.Weeks[5] = WeekSlot{Kind: SlotLockedOOC, Opponent: "Samford"}
	team.Weeks[6] = WeekSlot{Kind: SlotLockedOOC, Opponent: "Rice", Away: true}

	states, _ := buildStates([]*Team{team})
	if got := states[0].oocRemaining; got != 0 {
		t.Errorf("oocRemaining = %d, want 0", got)
	}
}

func TestBuildStatesNormalizesOpponents(t *testing.T) {
	team := &Team{Name: "Akron", Conference: "MAC", OOCNeeded: 2}
	team.Weeks[5] = WeekSlot{Kind: SlotLockedOOC, Opponent: "  Kent State "}

	states, _ := buildStates([]*Team{team})
	if !states[0].played["kent state"] {
		t.Errorf("opponent not normalized: %v", states[0].played)
	}
}

func TestBuildStatesCountsGeneratedGames(t *testing.T) {
	// Re-running on a generated schedule must not ask for more games.
	team := &Team{Name: "Akron", Conference: "MAC", OOCNeeded: 2}
	team.Weeks[4] = WeekSlot{Kind: SlotLockedOOC, Opponent: "Samford"}
	team.Weeks[9] = WeekSlot{Kind: SlotOOC, Opponent: "Rice", Away: true}

	states, _ := buildStates([]*Team{team})
	s := states[0]
	if s.oocRemaining != 0 {
		t.Errorf("oocRemaining = %d, want 0", s.oocRemaining)
	}
	if !s.played["samford"] || !s.played["rice"] {
		t.Errorf("played set incomplete: %v", s.played)
	}
}

func TestDropWeek(t *testing.T) {
	team := &Team{Name: "Akron", Conference: "MAC", OOCNeeded: 1}
	states, _ := buildStates([]*Team{team})
	s := states[0]

	s.dropWeek(5)
	if s.hasWeek(5) {
		t.Errorf("week 5 still available after dropWeek")
	}
	if len(s.available) != NumWeeks-1 {
		t.Errorf("available has %d weeks, want %d", len(s.available), NumWeeks-1)
	}
}

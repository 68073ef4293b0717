package schedule

import (
	"fmt"
	"strings"
)

// NumWeeks is the length of every team's week card, indices 0-13.
const NumWeeks = 14

// MaxGames caps how many games any team may carry across the season.
const MaxGames = 12

// SlotKind identifies what occupies a week slot.
type SlotKind int

const (
	SlotEmpty      SlotKind = iota
	SlotBye                 // explicit off week, distinct from merely unfilled
	SlotConference          // fixed conference game, never touched by the scheduler
	SlotLockedOOC           // out-of-conference game present in the input, never touched
	SlotOOC                 // out-of-conference game placed by the scheduler
)

// WeekSlot is one entry on a team's week card. Opponent and Away are
// meaningful only for the game kinds.
type WeekSlot struct {
	Kind     SlotKind
	Opponent string
	Away     bool
}

// Team is the unit of input and output: a named team with its conference,
// its out-of-conference game target, and its week card. The scheduler
// mutates the card in place; it never replaces the Team itself.
type Team struct {
	Name       string
	Conference string
	OOCNeeded  int
	Weeks      [NumWeeks]WeekSlot
}

// Key returns the normalized identity used for lookups and comparisons.
// Team and opponent names compare case- and whitespace-insensitively.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsGame reports whether the slot holds a scheduled game of any kind.
func (s WeekSlot) IsGame() bool {
	switch s.Kind {
	case SlotConference, SlotLockedOOC, SlotOOC:
		return true
	}
	return false
}

// IsOpen reports whether the scheduler may still write to this slot.
// Only empty slots are open; a bye is a deliberate off week, not an
// unfilled one, and is never reclaimed.
func (s WeekSlot) IsOpen() bool {
	return s.Kind == SlotEmpty
}

// String renders the slot in the text grammar shared by config cells,
// CSV grids, and workbook cells. Locked and generated out-of-conference
// games render identically; re-importing a generated schedule locks them.
func (s WeekSlot) String() string {
	switch s.Kind {
	case SlotBye:
		return "BYE"
	case SlotConference:
		if s.Away {
			return "at " + s.Opponent
		}
		return "vs " + s.Opponent
	case SlotLockedOOC, SlotOOC:
		if s.Away {
			return "OOC at " + s.Opponent
		}
		return "OOC vs " + s.Opponent
	}
	return ""
}

// ParseSlot parses the slot text grammar:
//
//	""                 open week
//	"BYE"              bye
//	"vs Ohio"          conference game at home
//	"at Ohio"          conference game away
//	"OOC vs Samford"   out-of-conference game at home
//	"OOC at Samford"   out-of-conference game away
//
// Out-of-conference entries always parse as locked: anything already on
// the card when a run starts is immutable.
func ParseSlot(text string) (WeekSlot, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return WeekSlot{}, nil
	}
	if strings.EqualFold(trimmed, "BYE") {
		return WeekSlot{Kind: SlotBye}, nil
	}

	kind := SlotConference
	rest := trimmed
	if len(rest) > 4 && strings.EqualFold(rest[:4], "OOC ") {
		kind = SlotLockedOOC
		rest = strings.TrimSpace(rest[4:])
	}

	var away bool
	switch {
	case len(rest) > 3 && strings.EqualFold(rest[:3], "vs "):
		rest = rest[3:]
	case len(rest) > 3 && strings.EqualFold(rest[:3], "at "):
		away = true
		rest = rest[3:]
	default:
		return WeekSlot{}, fmt.Errorf("unrecognized slot %q", text)
	}

	opponent := strings.TrimSpace(rest)
	if opponent == "" {
		return WeekSlot{}, fmt.Errorf("slot %q has no opponent", text)
	}
	return WeekSlot{Kind: kind, Opponent: opponent, Away: away}, nil
}

// TeamSummary holds the per-team counts shown in summaries and sheets.
type TeamSummary struct {
	Games    int
	Home     int
	Away     int
	Byes     int
	OOCGames int
	Unfilled int // out-of-conference games still needed
}

// Summary tallies a team's card.
func (t *Team) Summary() TeamSummary {
	var s TeamSummary
	for _, slot := range t.Weeks {
		if slot.IsGame() {
			s.Games++
			if slot.Away {
				s.Away++
			} else {
				s.Home++
			}
		}
		switch slot.Kind {
		case SlotBye:
			s.Byes++
		case SlotLockedOOC, SlotOOC:
			s.OOCGames++
		}
	}
	s.Unfilled = t.OOCNeeded - s.OOCGames
	if s.Unfilled < 0 {
		s.Unfilled = 0
	}
	return s
}

package validator

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/oocsched/internal/config"
	"github.com/derekprior/oocsched/internal/schedule"
)

// Violation represents a constraint violation found during validation.
type Violation struct {
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule workbook and checks it against the config:
// hard constraints (game cap, repeat opponents, same-conference
// out-of-conference games, pairing symmetry, locked slots unchanged) as
// errors, soft ones (unfilled need, bye pileups, home/away imbalance) as
// warnings.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	teams, err := readScheduleSheet(f)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	roster, err := cfg.Roster()
	if err != nil {
		return nil, fmt.Errorf("building roster: %w", err)
	}

	var violations []Violation
	violations = append(violations, checkRosterCoverage(roster, teams)...)
	violations = append(violations, checkGameCap(teams)...)
	violations = append(violations, checkOpponents(teams)...)
	violations = append(violations, checkSymmetry(teams)...)
	violations = append(violations, checkLockedSlots(roster, teams)...)
	violations = append(violations, checkByes(teams)...)
	violations = append(violations, checkFulfillment(teams)...)
	violations = append(violations, checkHomeAwayBalance(teams)...)

	return violations, nil
}

// readScheduleSheet parses the master grid back into teams. Cells use the
// same slot grammar the generator writes.
func readScheduleSheet(f *excelize.File) ([]*schedule.Team, error) {
	rows, err := f.GetRows("Schedule")
	if err != nil {
		return nil, fmt.Errorf("reading Schedule sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Schedule sheet is empty")
	}

	var teams []*schedule.Team
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 3 || row[0] == "" {
			continue
		}

		t := &schedule.Team{Name: row[0], Conference: row[1]}
		fmt.Sscanf(row[2], "%d", &t.OOCNeeded)

		for w := 0; w < schedule.NumWeeks; w++ {
			cell := ""
			if 3+w < len(row) {
				cell = row[3+w]
			}
			slot, err := schedule.ParseSlot(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d week %d: %w", i+1, w, err)
			}
			t.Weeks[w] = slot
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func indexTeams(teams []*schedule.Team) map[string]*schedule.Team {
	m := make(map[string]*schedule.Team, len(teams))
	for _, t := range teams {
		m[schedule.Key(t.Name)] = t
	}
	return m
}

func checkRosterCoverage(roster, teams []*schedule.Team) []Violation {
	var violations []Violation
	inSheet := indexTeams(teams)
	inRoster := indexTeams(roster)

	for _, t := range roster {
		if _, ok := inSheet[schedule.Key(t.Name)]; !ok {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s is in the config but missing from the workbook", t.Name),
			})
		}
	}
	for _, t := range teams {
		if _, ok := inRoster[schedule.Key(t.Name)]; !ok {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("%s is in the workbook but not in the config", t.Name),
			})
		}
	}
	return violations
}

func checkGameCap(teams []*schedule.Team) []Violation {
	var violations []Violation
	for _, t := range teams {
		if sum := t.Summary(); sum.Games > schedule.MaxGames {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s has %d games (max %d)", t.Name, sum.Games, schedule.MaxGames),
			})
		}
	}
	return violations
}

// checkOpponents flags self-play, repeat out-of-conference opponents,
// and out-of-conference games inside one conference.
func checkOpponents(teams []*schedule.Team) []Violation {
	var violations []Violation
	byKey := indexTeams(teams)

	for _, t := range teams {
		key := schedule.Key(t.Name)
		seen := make(map[string]int)
		for w, slot := range t.Weeks {
			if !slot.IsGame() {
				continue
			}
			oppKey := schedule.Key(slot.Opponent)
			if oppKey == key {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%s plays itself in week %d", t.Name, w),
				})
				continue
			}
			if slot.Kind == schedule.SlotConference {
				continue
			}
			if prev, ok := seen[oppKey]; ok {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%s plays %s twice (weeks %d and %d)", t.Name, slot.Opponent, prev, w),
				})
			}
			seen[oppKey] = w
			if opp, ok := byKey[oppKey]; ok && opp.Conference == t.Conference {
				violations = append(violations, Violation{
					Type: "error",
					Message: fmt.Sprintf("%s vs %s in week %d is marked out-of-conference but both are in %s",
						t.Name, slot.Opponent, w, t.Conference),
				})
			}
		}
	}
	return violations
}

// checkSymmetry verifies that every out-of-conference game against a
// rostered opponent has its mirror: same week, opposite side.
func checkSymmetry(teams []*schedule.Team) []Violation {
	var violations []Violation
	byKey := indexTeams(teams)

	for _, t := range teams {
		for w, slot := range t.Weeks {
			if slot.Kind != schedule.SlotLockedOOC && slot.Kind != schedule.SlotOOC {
				continue
			}
			opp, ok := byKey[schedule.Key(slot.Opponent)]
			if !ok {
				continue
			}
			mirror := opp.Weeks[w]
			mirrorOOC := mirror.Kind == schedule.SlotLockedOOC || mirror.Kind == schedule.SlotOOC
			if !mirrorOOC || schedule.Key(mirror.Opponent) != schedule.Key(t.Name) || mirror.Away == slot.Away {
				violations = append(violations, Violation{
					Type: "error",
					Message: fmt.Sprintf("%s plays %s in week %d but %s's week %d does not mirror it",
						t.Name, slot.Opponent, w, opp.Name, w),
				})
			}
		}
	}
	return violations
}

// checkLockedSlots verifies no fixed slot from the config was altered.
// Conference and locked out-of-conference games must render identically
// in the workbook.
func checkLockedSlots(roster, teams []*schedule.Team) []Violation {
	var violations []Violation
	bySheet := indexTeams(teams)

	for _, r := range roster {
		t, ok := bySheet[schedule.Key(r.Name)]
		if !ok {
			continue
		}
		for w, slot := range r.Weeks {
			if slot.Kind != schedule.SlotConference && slot.Kind != schedule.SlotLockedOOC {
				continue
			}
			if t.Weeks[w].String() != slot.String() {
				violations = append(violations, Violation{
					Type: "error",
					Message: fmt.Sprintf("%s week %d: locked slot %q changed to %q",
						r.Name, w, slot.String(), t.Weeks[w].String()),
				})
			}
		}
	}
	return violations
}

func checkByes(teams []*schedule.Team) []Violation {
	var violations []Violation
	for _, t := range teams {
		if sum := t.Summary(); sum.Byes > 3 {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("%s has %d byes (expected at most 3)", t.Name, sum.Byes),
			})
		}
	}
	return violations
}

func checkFulfillment(teams []*schedule.Team) []Violation {
	var violations []Violation
	for _, t := range teams {
		if sum := t.Summary(); sum.Unfilled > 0 {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("%s still needs %d out-of-conference game(s)", t.Name, sum.Unfilled),
			})
		}
	}
	return violations
}

// checkHomeAwayBalance warns on lopsided slates for teams whose
// out-of-conference need is met; teams with open need are expected to be
// unbalanced.
func checkHomeAwayBalance(teams []*schedule.Team) []Violation {
	var violations []Violation
	for _, t := range teams {
		sum := t.Summary()
		if sum.Unfilled > 0 {
			continue
		}
		diff := sum.Home - sum.Away
		if diff < 0 {
			diff = -diff
		}
		if diff > 2 {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("%s has %d home and %d away games", t.Name, sum.Home, sum.Away),
			})
		}
	}
	return violations
}

// Package csvio reads and writes team schedules as CSV grids: one row
// per team, one column per week, cells in the slot text grammar.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/derekprior/oocsched/internal/schedule"
)

func header() []string {
	h := []string{"Team", "Conference", "OOC Needed"}
	for w := 0; w < schedule.NumWeeks; w++ {
		h = append(h, fmt.Sprintf("Week %d", w))
	}
	return h
}

// Write renders teams as a CSV grid.
func Write(w io.Writer, teams []*schedule.Team) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header()); err != nil {
		return err
	}
	for _, t := range teams {
		row := []string{t.Name, t.Conference, strconv.Itoa(t.OOCNeeded)}
		for _, slot := range t.Weeks {
			row = append(row, slot.String())
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read parses a CSV grid back into teams. The header row is required and
// must match the layout Write produces. Out-of-conference games read from
// the grid come back locked.
func Read(r io.Reader) ([]*schedule.Team, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3 + schedule.NumWeeks

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV")
	}
	if !strings.EqualFold(strings.TrimSpace(records[0][0]), "Team") {
		return nil, fmt.Errorf("missing header row (first cell %q, want %q)", records[0][0], "Team")
	}

	var teams []*schedule.Team
	for i, rec := range records[1:] {
		row := i + 2 // 1-based, after header
		needed, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad OOC Needed %q", row, rec[2])
		}
		t := &schedule.Team{
			Name:       strings.TrimSpace(rec[0]),
			Conference: strings.TrimSpace(rec[1]),
			OOCNeeded:  needed,
		}
		for w := 0; w < schedule.NumWeeks; w++ {
			slot, err := schedule.ParseSlot(rec[3+w])
			if err != nil {
				return nil, fmt.Errorf("row %d week %d: %w", row, w, err)
			}
			t.Weeks[w] = slot
		}
		teams = append(teams, t)
	}
	return teams, nil
}

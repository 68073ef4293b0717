package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/oocsched/internal/schedule"
)

// Generate creates an Excel workbook with the full schedule grid, one
// sheet per conference, and a per-team summary.
func Generate(teams []*schedule.Team) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	styles, err := newSlotStyles(f)
	if err != nil {
		return nil, fmt.Errorf("building styles: %w", err)
	}

	if err := writeScheduleSheet(f, "Schedule", teams, styles); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}

	for _, conf := range conferenceOrder(teams) {
		var members []*schedule.Team
		for _, t := range teams {
			if t.Conference == conf {
				members = append(members, t)
			}
		}
		if err := writeScheduleSheet(f, conf, members, styles); err != nil {
			return nil, fmt.Errorf("writing %s sheet: %w", conf, err)
		}
	}

	if err := writeSummarySheet(f, teams); err != nil {
		return nil, fmt.Errorf("writing summary sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func conferenceOrder(teams []*schedule.Team) []string {
	seen := make(map[string]bool)
	var confs []string
	for _, t := range teams {
		if !seen[t.Conference] {
			seen[t.Conference] = true
			confs = append(confs, t.Conference)
		}
	}
	return confs
}

// slotStyles holds one cell style per slot kind, mirroring the color
// coding the drag-and-drop UI used for the same grid.
type slotStyles struct {
	header     int
	conference int
	lockedOOC  int
	generated  int
	bye        int
	open       int
	plain      int
}

func newSlotStyles(f *excelize.File) (*slotStyles, error) {
	fill := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Size: 12, Family: "Arial"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
	}

	var s slotStyles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	if s.conference, err = fill("#C6EFCE"); err != nil { // green
		return nil, err
	}
	if s.lockedOOC, err = fill("#FFEB9C"); err != nil { // amber
		return nil, err
	}
	if s.generated, err = fill("#DDEBF7"); err != nil { // blue
		return nil, err
	}
	if s.bye, err = fill("#D9D9D9"); err != nil { // gray
		return nil, err
	}
	if s.open, err = fill("#FFC7CE"); err != nil { // red: still unfilled
		return nil, err
	}
	s.plain, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 12, Family: "Arial"},
	})
	return &s, err
}

func (s *slotStyles) forSlot(slot schedule.WeekSlot) int {
	switch slot.Kind {
	case schedule.SlotConference:
		return s.conference
	case schedule.SlotLockedOOC:
		return s.lockedOOC
	case schedule.SlotOOC:
		return s.generated
	case schedule.SlotBye:
		return s.bye
	}
	return s.open
}

func writeScheduleSheet(f *excelize.File, sheet string, teams []*schedule.Team, styles *slotStyles) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Team", "Conference", "OOC"}
	for w := 0; w < schedule.NumWeeks; w++ {
		headers = append(headers, fmt.Sprintf("Week %d", w))
	}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
		f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), styles.header)
	}

	for i, t := range teams {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), t.Name)
		f.SetCellValue(sheet, cellRef(2, row), t.Conference)
		f.SetCellValue(sheet, cellRef(3, row), t.OOCNeeded)
		for col := 1; col <= 3; col++ {
			f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), styles.plain)
		}

		for w, slot := range t.Weeks {
			col := w + 4 // 1-indexed, after Team/Conference/OOC
			if text := slot.String(); text != "" {
				f.SetCellValue(sheet, cellRef(col, row), text)
			}
			f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), styles.forSlot(slot))
		}
	}

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 16)
	f.SetColWidth(sheet, "C", "C", 6)
	for w := 0; w < schedule.NumWeeks; w++ {
		col := colLetter(w + 4)
		f.SetColWidth(sheet, col, col, 20)
	}

	return nil
}

func writeSummarySheet(f *excelize.File, teams []*schedule.Team) error {
	sheet := "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	headers := []string{"Team", "Conference", "Games", "Home", "Away", "Byes", "OOC Unfilled"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
		if headerStyle != 0 {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
		}
	}

	for i, t := range teams {
		row := i + 2
		sum := t.Summary()
		f.SetCellValue(sheet, cellRef(1, row), t.Name)
		f.SetCellValue(sheet, cellRef(2, row), t.Conference)
		f.SetCellValue(sheet, cellRef(3, row), sum.Games)
		f.SetCellValue(sheet, cellRef(4, row), sum.Home)
		f.SetCellValue(sheet, cellRef(5, row), sum.Away)
		f.SetCellValue(sheet, cellRef(6, row), sum.Byes)
		f.SetCellValue(sheet, cellRef(7, row), sum.Unfilled)
	}

	widths := map[string]float64{"A": 22, "B": 16, "C": 8, "D": 8, "E": 8, "F": 8, "G": 14}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

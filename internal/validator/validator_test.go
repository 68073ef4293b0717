package validator

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/derekprior/oocsched/internal/config"
	"github.com/derekprior/oocsched/internal/excel"
	"github.com/derekprior/oocsched/internal/schedule"
)

const validatorConfigYAML = `
teams:
  - name: Akron
    conference: MAC
    ooc_needed: 1
    weeks:
      2: "vs Ohio"
  - name: Ohio
    conference: MAC
    ooc_needed: 0
    weeks:
      2: "at Akron"
  - name: Rice
    conference: American
    ooc_needed: 1
`

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFromBytes([]byte(validatorConfigYAML))
	if err != nil {
		t.Fatalf("LoadFromBytes() error: %v", err)
	}
	return cfg
}

// scheduledRoster is the config roster with the Akron/Rice pairing the
// generator would add.
func scheduledRoster(t *testing.T, cfg *config.Config) []*schedule.Team {
	t.Helper()
	roster, err := cfg.Roster()
	if err != nil {
		t.Fatalf("Roster() error: %v", err)
	}
	akron, rice := roster[0], roster[2]
	akron.Weeks[5] = schedule.WeekSlot{Kind: schedule.SlotOOC, Opponent: "Rice"}
	rice.Weeks[5] = schedule.WeekSlot{Kind: schedule.SlotOOC, Opponent: "Akron", Away: true}
	return roster
}

func saveWorkbook(t *testing.T, teams []*schedule.Team) string {
	t.Helper()
	f, err := excel.Generate(teams)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error: %v", err)
	}
	return path
}

func errorCount(violations []Violation) (errors, warnings int) {
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
		default:
			warnings++
		}
	}
	return errors, warnings
}

func hasViolation(violations []Violation, vtype, fragment string) bool {
	for _, v := range violations {
		if v.Type == vtype && strings.Contains(v.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidateCleanWorkbook(t *testing.T) {
	cfg := loadConfig(t)
	path := saveWorkbook(t, scheduledRoster(t, cfg))

	violations, err := Validate(cfg, path)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("clean workbook produced violations: %v", violations)
	}
}

func TestValidateMissingMirror(t *testing.T) {
	cfg := loadConfig(t)
	roster := scheduledRoster(t, cfg)
	// Drop Rice's half of the pairing.
	roster[2].Weeks[5] = schedule.WeekSlot{}
	path := saveWorkbook(t, roster)

	violations, err := Validate(cfg, path)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !hasViolation(violations, "error", "does not mirror") {
		t.Errorf("missing mirror not flagged: %v", violations)
	}
	if !hasViolation(violations, "warning", "still needs 1") {
		t.Errorf("Rice's open need not flagged: %v", violations)
	}
}

func TestValidateAlteredLockedSlot(t *testing.T) {
	cfg := loadConfig(t)
	roster := scheduledRoster(t, cfg)
	// Move Akron's fixed conference game; its configured week 2 is now
	// empty in the workbook.
	roster[0].Weeks[2] = schedule.WeekSlot{}
	roster[0].Weeks[7] = schedule.WeekSlot{Kind: schedule.SlotConference, Opponent: "Ohio"}
	path := saveWorkbook(t, roster)

	violations, err := Validate(cfg, path)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !hasViolation(violations, "error", "locked slot") {
		t.Errorf("altered locked slot not flagged: %v", violations)
	}
}

func TestValidateSameConferenceOOC(t *testing.T) {
	cfg := loadConfig(t)
	roster := scheduledRoster(t, cfg)
	akron, ohio := roster[0], roster[1]
	akron.Weeks[8] = schedule.WeekSlot{Kind: schedule.SlotOOC, Opponent: "Ohio"}
	ohio.Weeks[8] = schedule.WeekSlot{Kind: schedule.SlotOOC, Opponent: "Akron", Away: true}
	path := saveWorkbook(t, roster)

	violations, err := Validate(cfg, path)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !hasViolation(violations, "error", "both are in MAC") {
		t.Errorf("same-conference pairing not flagged: %v", violations)
	}
}

func TestValidateRepeatOpponent(t *testing.T) {
	cfg := loadConfig(t)
	roster := scheduledRoster(t, cfg)
	akron, rice := roster[0], roster[2]
	akron.Weeks[9] = schedule.WeekSlot{Kind: schedule.SlotOOC, Opponent: "Rice", Away: true}
	rice.Weeks[9] = schedule.WeekSlot{Kind: schedule.SlotOOC, Opponent: "Akron"}
	path := saveWorkbook(t, roster)

	violations, err := Validate(cfg, path)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !hasViolation(violations, "error", "twice") {
		t.Errorf("repeat opponent not flagged: %v", violations)
	}
}

func TestValidateMissingTeam(t *testing.T) {
	cfg := loadConfig(t)
	roster := scheduledRoster(t, cfg)
	// Leave Ohio out of the workbook entirely.
	path := saveWorkbook(t, []*schedule.Team{roster[0], roster[2]})

	violations, err := Validate(cfg, path)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !hasViolation(violations, "error", "missing from the workbook") {
		t.Errorf("missing team not flagged: %v", violations)
	}
}

func TestValidateExtraByes(t *testing.T) {
	cfg := loadConfig(t)
	roster := scheduledRoster(t, cfg)
	for _, w := range []int{10, 11, 12, 13} {
		roster[2].Weeks[w] = schedule.WeekSlot{Kind: schedule.SlotBye}
	}
	path := saveWorkbook(t, roster)

	violations, err := Validate(cfg, path)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !hasViolation(violations, "warning", "4 byes") {
		t.Errorf("bye pileup not flagged: %v", violations)
	}
	if errs, _ := errorCount(violations); errs != 0 {
		t.Errorf("bye pileup should be warning-only, got: %v", violations)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/derekprior/oocsched/internal/config"
	"github.com/derekprior/oocsched/internal/csvio"
	"github.com/derekprior/oocsched/internal/excel"
	"github.com/derekprior/oocsched/internal/schedule"
	"github.com/derekprior/oocsched/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "oocsched",
		Short: "Out-of-conference football schedule generator",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	var importOutputPath string
	importCmd := &cobra.Command{
		Use:          "import <grid.csv>",
		Short:        "Convert a CSV schedule grid into a config file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], importOutputPath)
		},
	}
	importCmd.Flags().StringVarP(&importOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var outputFile, csvFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Fill open weeks with out-of-conference games",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile, csvFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")
	generateCmd.Flags().StringVar(&csvFile, "csv", "", "Also write the schedule grid as CSV to this path")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate a schedule against the config",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, importCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# oocsched Season Configuration
# =============================
# This file defines the teams and constraints for filling open weeks
# with out-of-conference (OOC) games.

# Options control the scheduling pass.
options:
  # Defer week 0: the scheduler fills weeks 1-13 first and uses week 0
  # only for pairings that found no other week. Defaults to true.
  avoid_week_zero: true

# Teams. Names must be unique (case-insensitive). Each team has 14 week
# slots, indices 0-13; weeks not listed are open. Slot values:
#
#   vs Opponent       conference game at home (fixed, never moved)
#   at Opponent       conference game away (fixed, never moved)
#   OOC vs Opponent   out-of-conference game at home (fixed)
#   OOC at Opponent   out-of-conference game away (fixed)
#   BYE               explicit off week
#
# ooc_needed is the total OOC target for the team; games already on the
# card count toward it. The scheduler fills the rest, pairing teams from
# different conferences that have not already played each other, up to
# 12 games per team.
teams:
  - name: Akron
    conference: MAC
    ooc_needed: 4
    weeks:
      2: "vs Kent State"
      4: "at Ohio"
      7: "OOC at Tennessee"
  - name: Kent State
    conference: MAC
    ooc_needed: 4
    weeks:
      2: "at Akron"
  - name: Ohio
    conference: MAC
    ooc_needed: 4
    weeks:
      4: "vs Akron"
  - name: Rice
    conference: American
    ooc_needed: 4
    weeks:
      3: "vs Tulsa"
  - name: Tulsa
    conference: American
    ooc_needed: 4
    weeks:
      3: "at Rice"
  - name: Tulane
    conference: American
    ooc_needed: 4
`

func runImport(csvPath, outputPath string) error {
	in, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("opening grid: %w", err)
	}
	defer in.Close()

	teams, err := csvio.Read(in)
	if err != nil {
		return fmt.Errorf("reading grid: %w", err)
	}

	cfg := config.Config{}
	for _, t := range teams {
		entry := config.TeamEntry{
			Name:       t.Name,
			Conference: t.Conference,
			OOCNeeded:  t.OOCNeeded,
			Weeks:      make(map[int]string),
		}
		for w, slot := range t.Weeks {
			if text := slot.String(); text != "" {
				entry.Weeks[w] = text
			}
		}
		cfg.Teams = append(cfg.Teams, entry)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("imported grid is invalid: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Imported %d teams into %s\n", len(teams), outputPath)
	return nil
}

func runGenerate(configPath, outputPath, csvPath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	teams, err := cfg.Roster()
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}

	fmt.Printf("Scheduling out-of-conference games for %d teams...\n", len(teams))

	result, err := schedule.Generate(teams, cfg.AvoidWeekZero())
	if err != nil {
		return err
	}

	if !result.OK {
		fmt.Fprintf(os.Stderr, "✗ %s: %d game(s) wanted, none could be placed\n", result.Reason, result.NeededOOC)
		if cfg.AvoidWeekZero() {
			fmt.Fprintln(os.Stderr, "  (week 0 was already tried as a last resort; check conferences and repeat opponents)")
		}
		return fmt.Errorf("scheduling failed: %s", result.Reason)
	}

	schedule.DistributeByes(result.Teams, cfg.AvoidWeekZero())

	if result.Unscheduled > 0 {
		fmt.Printf("⚠ Placed %d of %d out-of-conference games (%d unfilled)\n",
			result.ScheduledOOC, result.NeededOOC, result.Unscheduled)
	} else {
		fmt.Printf("✓ All %d out-of-conference games placed\n", result.ScheduledOOC)
	}

	fmt.Println("\nPer Team Metrics:")
	fmt.Printf("  %-20s %-12s %6s %5s %5s %5s %9s\n", "Team", "Conference", "Games", "Home", "Away", "Byes", "OOC Left")
	for _, t := range result.Teams {
		sum := t.Summary()
		fmt.Printf("  %-20s %-12s %6d %5d %5d %5d %9d\n",
			t.Name, t.Conference, sum.Games, sum.Home, sum.Away, sum.Byes, sum.Unfilled)
	}

	f, err := excel.Generate(result.Teams)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)

	if csvPath != "" {
		out, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("creating CSV: %w", err)
		}
		defer out.Close()
		if err := csvio.Write(out, result.Teams); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
		fmt.Printf("✓ Grid saved to %s\n", csvPath)
	}

	return nil
}

func runValidate(configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Guideline violation: %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d guideline violations\n", errors, warnings)

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}

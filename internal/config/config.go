package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/oocsched/internal/schedule"
)

// Options are run-wide scheduling switches.
type Options struct {
	AvoidWeekZero *bool `yaml:"avoid_week_zero"`
}

// TeamEntry is one team's configuration: identity, out-of-conference
// target, and any games already on the card, keyed by week index. Weeks
// not listed are open.
type TeamEntry struct {
	Name       string         `yaml:"name"`
	Conference string         `yaml:"conference"`
	OOCNeeded  int            `yaml:"ooc_needed"`
	Weeks      map[int]string `yaml:"weeks"`
}

type Config struct {
	Options Options     `yaml:"options"`
	Teams   []TeamEntry `yaml:"teams"`
}

// AvoidWeekZero reports whether the matcher should defer week 0.
// Defaults to true when unset.
func (c *Config) AvoidWeekZero() bool {
	if c.Options.AvoidWeekZero == nil {
		return true
	}
	return *c.Options.AvoidWeekZero
}

// Roster converts the configured teams into scheduler input.
func (c *Config) Roster() ([]*schedule.Team, error) {
	teams := make([]*schedule.Team, 0, len(c.Teams))
	for _, e := range c.Teams {
		t := &schedule.Team{Name: e.Name, Conference: e.Conference, OOCNeeded: e.OOCNeeded}
		for w, text := range e.Weeks {
			slot, err := schedule.ParseSlot(text)
			if err != nil {
				return nil, fmt.Errorf("team %q week %d: %w", e.Name, w, err)
			}
			t.Weeks[w] = slot
		}
		teams = append(teams, t)
	}
	return teams, nil
}

// Conferences returns conference names in order of first appearance.
func (c *Config) Conferences() []string {
	seen := make(map[string]bool)
	var confs []string
	for _, e := range c.Teams {
		if !seen[e.Conference] {
			seen[e.Conference] = true
			confs = append(confs, e.Conference)
		}
	}
	return confs
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// Validate enforces the invariants the scheduler assumes and does not
// re-check: unique names, sane week indices, parseable slots, no
// self-play, no same-conference out-of-conference opponents, and a card
// within the game cap.
func (c *Config) Validate() error {
	if len(c.Teams) == 0 {
		return fmt.Errorf("at least one team is required")
	}

	conferences := make(map[string]string) // normalized name -> conference
	names := make(map[string]string)       // normalized name -> original name
	for _, e := range c.Teams {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("team with empty name")
		}
		key := schedule.Key(e.Name)
		if prev, ok := names[key]; ok {
			return fmt.Errorf("duplicate team name %q (conflicts with %q)", e.Name, prev)
		}
		names[key] = e.Name
		if strings.TrimSpace(e.Conference) == "" {
			return fmt.Errorf("team %q has no conference", e.Name)
		}
		conferences[key] = e.Conference
		if e.OOCNeeded < 0 {
			return fmt.Errorf("team %q: ooc_needed must not be negative", e.Name)
		}
	}

	for _, e := range c.Teams {
		key := schedule.Key(e.Name)
		games := 0
		for w, text := range e.Weeks {
			if w < 0 || w >= schedule.NumWeeks {
				return fmt.Errorf("team %q: week %d out of range 0-%d", e.Name, w, schedule.NumWeeks-1)
			}
			slot, err := schedule.ParseSlot(text)
			if err != nil {
				return fmt.Errorf("team %q week %d: %w", e.Name, w, err)
			}
			if !slot.IsGame() {
				continue
			}
			games++
			oppKey := schedule.Key(slot.Opponent)
			if oppKey == key {
				return fmt.Errorf("team %q week %d: a team cannot play itself", e.Name, w)
			}
			// Opponents outside the roster (FCS teams and the like)
			// can't be conference-checked.
			conf, known := conferences[oppKey]
			if !known {
				continue
			}
			if slot.Kind == schedule.SlotLockedOOC && conf == e.Conference {
				return fmt.Errorf("team %q week %d: out-of-conference game against %q, but both are in %q",
					e.Name, w, slot.Opponent, conf)
			}
			if slot.Kind == schedule.SlotConference && conf != e.Conference {
				return fmt.Errorf("team %q week %d: conference game against %q, which is in %q",
					e.Name, w, slot.Opponent, conf)
			}
		}
		if games > schedule.MaxGames {
			return fmt.Errorf("team %q has %d games on its card, max %d", e.Name, games, schedule.MaxGames)
		}
	}

	return nil
}

// Package catalog holds the static training content: missions with their
// ordered steps, and the equipment store inventory. Catalog data is read-only
// reference data; all mutable state lives in the profile and progress stores.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty rates a mission for display and filtering.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// TeamType marks which side of an engagement a mission trains.
type TeamType string

const (
	TeamRed  TeamType = "Red Team"
	TeamBlue TeamType = "Blue Team"
	TeamBoth TeamType = "Both"
)

// StepType selects the interaction pattern (and evaluator) for a step.
type StepType string

const (
	StepTerminal       StepType = "terminal"
	StepWebLogin       StepType = "web-login"
	StepCodeInjection  StepType = "code-injection"
	StepMultipleChoice StepType = "multiple-choice"
	StepFreeInput      StepType = "input"
)

// StepData carries the type-specific configuration payload. Only the fields
// relevant to the step's type are populated; evaluators must treat empty
// lists as never matching.
type StepData struct {
	// Terminal
	Prompt           string   `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	ExpectedCommands []string `yaml:"expected_commands,omitempty" json:"expected_commands,omitempty"`
	SuccessResponse  string   `yaml:"success_response,omitempty" json:"success_response,omitempty"`

	// Web login / code injection
	Vulnerability   string `yaml:"vulnerability,omitempty" json:"vulnerability,omitempty"`
	ExpectedPayload string `yaml:"expected_payload,omitempty" json:"expected_payload,omitempty"`
	TargetCode      string `yaml:"target_code,omitempty" json:"target_code,omitempty"`

	// Multiple choice
	Question string   `yaml:"question,omitempty" json:"question,omitempty"`
	Options  []string `yaml:"options,omitempty" json:"options,omitempty"`
	Correct  int      `yaml:"correct" json:"correct"`

	// Free input
	Placeholder    string   `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	MinLength      int      `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	Keywords       []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	CorrectAnswers []string `yaml:"correct_answers,omitempty" json:"correct_answers,omitempty"`
}

// Step is one evaluatable unit of a mission. Step IDs are unique across the
// whole catalog, not just within their mission.
type Step struct {
	ID          int      `yaml:"id" json:"id"`
	Type        StepType `yaml:"type" json:"type"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Points      int      `yaml:"points" json:"points"`
	Data        StepData `yaml:"data" json:"data"`
}

// Mission is an ordered sequence of steps with aggregate metadata.
type Mission struct {
	ID           int        `yaml:"id" json:"id"`
	Title        string     `yaml:"title" json:"title"`
	Description  string     `yaml:"description" json:"description"`
	Difficulty   Difficulty `yaml:"difficulty" json:"difficulty"`
	Duration     string     `yaml:"duration" json:"duration"`
	TeamType     TeamType   `yaml:"team_type" json:"team_type"`
	Points       int        `yaml:"points" json:"points"`
	Participants int        `yaml:"participants" json:"participants"`
	Category     string     `yaml:"category" json:"category"`
	Steps        []Step     `yaml:"steps" json:"steps"`
}

// DurationMinutes parses the leading integer of the free-text duration as
// minutes. Returns 0 when the text does not start with digits.
func (m Mission) DurationMinutes() int {
	fields := strings.Fields(m.Duration)
	if len(fields) == 0 {
		return 0
	}
	digits := fields[0]
	for i, r := range digits {
		if r < '0' || r > '9' {
			digits = digits[:i]
			break
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// Catalog is the loaded, validated content set. Immutable after Load.
type Catalog struct {
	missions []Mission
	items    []Item

	missionByID map[int]*Mission
	stepByID    map[int]*Step
	itemByID    map[string]*Item
}

// Missions returns all missions in catalog order.
func (c *Catalog) Missions() []Mission {
	return c.missions
}

// Mission looks up a mission by id.
func (c *Catalog) Mission(id int) (*Mission, bool) {
	m, ok := c.missionByID[id]
	return m, ok
}

// Step looks up a step by its globally unique id.
func (c *Catalog) Step(id int) (*Step, bool) {
	s, ok := c.stepByID[id]
	return s, ok
}

// Items returns store items, optionally filtered by category. An empty
// category returns everything, in catalog order.
func (c *Catalog) Items(category Category) []Item {
	if category == "" {
		return c.items
	}
	var out []Item
	for _, it := range c.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// Item looks up a store item by id.
func (c *Catalog) Item(id string) (*Item, bool) {
	it, ok := c.itemByID[id]
	return it, ok
}

// index builds the lookup maps and enforces catalog-wide invariants.
func (c *Catalog) index() error {
	c.missionByID = make(map[int]*Mission, len(c.missions))
	c.stepByID = make(map[int]*Step)
	c.itemByID = make(map[string]*Item, len(c.items))

	for i := range c.missions {
		m := &c.missions[i]
		if _, dup := c.missionByID[m.ID]; dup {
			return fmt.Errorf("catalog: duplicate mission id %d", m.ID)
		}
		c.missionByID[m.ID] = m

		if len(m.Steps) == 0 {
			return fmt.Errorf("catalog: mission %d has no steps", m.ID)
		}
		for j := range m.Steps {
			s := &m.Steps[j]
			if _, dup := c.stepByID[s.ID]; dup {
				return fmt.Errorf("catalog: duplicate step id %d", s.ID)
			}
			if s.Points <= 0 {
				return fmt.Errorf("catalog: step %d has non-positive points", s.ID)
			}
			if s.Type == StepMultipleChoice {
				if s.Data.Correct < 0 || s.Data.Correct >= len(s.Data.Options) {
					return fmt.Errorf("catalog: step %d correct option %d out of range", s.ID, s.Data.Correct)
				}
			}
			c.stepByID[s.ID] = s
		}
	}

	for i := range c.items {
		it := &c.items[i]
		if _, dup := c.itemByID[it.ID]; dup {
			return fmt.Errorf("catalog: duplicate item id %q", it.ID)
		}
		if it.Price < 0 {
			return fmt.Errorf("catalog: item %q has negative price", it.ID)
		}
		c.itemByID[it.ID] = it
	}

	return nil
}

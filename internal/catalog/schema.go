// Package catalog loads the product-module catalog, classification rules,
// and scheduling configuration from a YAML file. The loaded catalog is
// immutable: the planning engine receives it by value and never writes back.
package catalog

// File is the top-level YAML document.
type File struct {
	MaxSessionMinutes int            `yaml:"max_session_minutes"`
	AffinityGroups    []string       `yaml:"affinity_groups"`
	Cadence           map[string]int `yaml:"cadence"`
	Questions         []QuestionSpec `yaml:"questions"`
	Modules           []ModuleSpec   `yaml:"modules"`
}

// QuestionSpec declares one questionnaire field, used both to validate rules
// and to render the interactive wizard.
type QuestionSpec struct {
	ID      string   `yaml:"id"`
	Prompt  string   `yaml:"prompt"`
	Type    string   `yaml:"type"` // "bool" or "select"
	Options []string `yaml:"options,omitempty"`
}

// ModuleSpec is one catalog module as written in YAML.
type ModuleSpec struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	LiveMinutes   int       `yaml:"live_minutes"`
	OnlineMinutes int       `yaml:"online_minutes"`
	Locked        bool      `yaml:"locked,omitempty"`
	Prerequisites []string  `yaml:"prerequisites,omitempty"`
	AffinityGroup string    `yaml:"affinity_group,omitempty"`
	FirstValue    string    `yaml:"first_value,omitempty"`
	Rule          *RuleSpec `yaml:"rule,omitempty"`
}

// RuleSpec is a declarative classification predicate over one question.
// Exactly one of Equals/In/Exists must be set.
type RuleSpec struct {
	Question string `yaml:"question"`
	Equals   any    `yaml:"equals,omitempty"`
	In       []any  `yaml:"in,omitempty"`
	Exists   bool   `yaml:"exists,omitempty"`
}
